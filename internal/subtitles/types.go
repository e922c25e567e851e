package subtitles

import "strings"

// Record is a single timed caption.
type Record struct {
	// Index is the sequence number as written in the source file. It is not
	// renumbered and may skip values.
	Index int
	Start string
	End   string
	// Text may span several physical lines joined by "\n".
	Text string
}

// Tokens returns the whitespace-word weight of the record text.
func (r Record) Tokens() int {
	return TokenWeight(r.Text)
}

// WithText returns a copy of the record carrying replacement text.
func (r Record) WithText(text string) Record {
	r.Text = text
	return r
}

// Document is an ordered collection of records. Record order is file order.
type Document struct {
	Records []Record
	// Language is an informational tag (e.g. "fr"); empty when unknown.
	Language string
}

// Len reports the number of records.
func (d Document) Len() int {
	return len(d.Records)
}

// Tokens sums the token weight of every record.
func (d Document) Tokens() int {
	total := 0
	for _, rec := range d.Records {
		total += rec.Tokens()
	}
	return total
}

// IndexRange returns the first and last record index, or ok=false when empty.
func (d Document) IndexRange() (first, last int, ok bool) {
	if len(d.Records) == 0 {
		return 0, 0, false
	}
	return d.Records[0].Index, d.Records[len(d.Records)-1].Index, true
}

// Clone returns a document that shares no backing storage with d.
func (d Document) Clone() Document {
	out := Document{Language: d.Language}
	if d.Records != nil {
		out.Records = make([]Record, len(d.Records))
		copy(out.Records, d.Records)
	}
	return out
}

// TokenWeight approximates the token cost of text as its whitespace word count.
func TokenWeight(text string) int {
	return len(strings.Fields(text))
}
