package subtitles

// SplitByCount partitions the document into consecutive chunks of at most n
// records. The last chunk may be smaller. n <= 0 is treated as 1.
func SplitByCount(doc Document, n int) []Document {
	if n <= 0 {
		n = 1
	}
	chunks := make([]Document, 0, (len(doc.Records)+n-1)/n)
	for start := 0; start < len(doc.Records); start += n {
		end := min(start+n, len(doc.Records))
		chunks = append(chunks, doc.slice(start, end))
	}
	return chunks
}

// SplitByTokenBudget greedily packs records into chunks whose token weight
// stays within maxTokens. A record that alone exceeds the budget is placed in
// a chunk by itself; no chunk is ever empty and no record is dropped.
func SplitByTokenBudget(doc Document, maxTokens int) []Document {
	var (
		chunks []Document
		start  int
		weight int
	)
	for i, rec := range doc.Records {
		tokens := rec.Tokens()
		if i > start && weight+tokens > maxTokens {
			chunks = append(chunks, doc.slice(start, i))
			start = i
			weight = 0
		}
		weight += tokens
	}
	if start < len(doc.Records) {
		chunks = append(chunks, doc.slice(start, len(doc.Records)))
	}
	return chunks
}

// Concat joins documents in argument order. The language tag is taken from
// the first document that has one.
func Concat(docs ...Document) Document {
	total := 0
	for _, d := range docs {
		total += len(d.Records)
	}
	out := Document{Records: make([]Record, 0, total)}
	for _, d := range docs {
		out.Records = append(out.Records, d.Records...)
		if out.Language == "" {
			out.Language = d.Language
		}
	}
	return out
}

// slice copies records [start, end) into a new document.
func (d Document) slice(start, end int) Document {
	records := make([]Record, end-start)
	copy(records, d.Records[start:end])
	return Document{Records: records, Language: d.Language}
}
