package subtitles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"lingosub/internal/fileutil"
)

// TimeRangeDelimiter separates the start and end timecodes of a unit.
const TimeRangeDelimiter = " --> "

const utf8BOM = "\ufeff"

// ParseErrorKind classifies grammar failures.
type ParseErrorKind int

const (
	// MalformedTimeRange means the line after an index did not split into
	// exactly two timecodes.
	MalformedTimeRange ParseErrorKind = iota + 1
	// UnexpectedEOF means input ended (or a unit closed) before the unit had
	// a time range and at least one text line.
	UnexpectedEOF
	// InvalidIndex means a numeric-looking index line was negative or too large.
	InvalidIndex
)

func (k ParseErrorKind) String() string {
	switch k {
	case MalformedTimeRange:
		return "malformed time range"
	case UnexpectedEOF:
		return "unexpected end of unit"
	case InvalidIndex:
		return "invalid index"
	default:
		return "parse error"
	}
}

// Sentinel values matched by ParseError.Is.
var (
	ErrMalformedTimeRange = errors.New("malformed time range")
	ErrUnexpectedEOF      = errors.New("unexpected end of unit")
	ErrInvalidIndex       = errors.New("invalid index")
)

// ParseError reports a grammar failure. Line is 1-based.
type ParseError struct {
	Kind   ParseErrorKind
	Line   int
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("parse srt: line %d: %s", e.Line, e.Kind)
	}
	return fmt.Sprintf("parse srt: line %d: %s: %s", e.Line, e.Kind, e.Detail)
}

// Is lets errors.Is match the kind sentinels.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrMalformedTimeRange:
		return e.Kind == MalformedTimeRange
	case ErrUnexpectedEOF:
		return e.Kind == UnexpectedEOF
	case ErrInvalidIndex:
		return e.Kind == InvalidIndex
	}
	return false
}

type parseState int

const (
	awaitIndex parseState = iota
	awaitTimeRange
	awaitText
)

// ParseFile opens path and parses it as an SRT document.
func ParseFile(path string) (Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads the SRT block grammar from r. Any malformed unit aborts the
// whole parse; no partial document is returned.
func Parse(r io.Reader) (Document, error) {
	lines := newLineReader(r)
	var (
		doc     Document
		state   = awaitIndex
		current Record
		text    []string
	)

	closeUnit := func() {
		current.Text = strings.Join(text, "\n")
		doc.Records = append(doc.Records, current)
		current = Record{}
		text = nil
		state = awaitIndex
	}

	for {
		line, err := lines.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Document{}, fmt.Errorf("read srt: %w", err)
		}

		switch state {
		case awaitIndex:
			index, ok, perr := parseIndexLine(line, lines.number)
			if perr != nil {
				return Document{}, perr
			}
			if !ok {
				continue
			}
			current = Record{Index: index}
			state = awaitTimeRange

		case awaitTimeRange:
			parts := strings.Split(line, TimeRangeDelimiter)
			if len(parts) != 2 {
				return Document{}, &ParseError{
					Kind:   MalformedTimeRange,
					Line:   lines.number,
					Detail: fmt.Sprintf("expected 2 timecodes, found %d in %q", len(parts), line),
				}
			}
			current.Start = parts[0]
			current.End = parts[1]
			state = awaitText

		case awaitText:
			if strings.TrimSpace(line) == "" {
				if len(text) == 0 {
					return Document{}, &ParseError{
						Kind:   UnexpectedEOF,
						Line:   lines.number,
						Detail: fmt.Sprintf("unit %d has no text", current.Index),
					}
				}
				closeUnit()
				continue
			}
			text = append(text, line)
		}
	}

	switch state {
	case awaitTimeRange:
		return Document{}, &ParseError{
			Kind:   UnexpectedEOF,
			Line:   lines.number,
			Detail: fmt.Sprintf("unit %d ends before its time range", current.Index),
		}
	case awaitText:
		if len(text) == 0 {
			return Document{}, &ParseError{
				Kind:   UnexpectedEOF,
				Line:   lines.number,
				Detail: fmt.Sprintf("unit %d has no text", current.Index),
			}
		}
		closeUnit()
	}
	return doc, nil
}

// parseIndexLine reports whether line starts a unit. Lines that are not
// numeric are stray and skipped; numeric lines that cannot be a valid index
// are rejected.
func parseIndexLine(line string, lineNo int) (int, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || !looksNumeric(trimmed) {
		return 0, false, nil
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil || value < 0 {
		return 0, false, &ParseError{Kind: InvalidIndex, Line: lineNo, Detail: strconv.Quote(trimmed)}
	}
	return value, true, nil
}

func looksNumeric(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type lineReader struct {
	reader *bufio.Reader
	number int
	done   bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{reader: bufio.NewReader(r)}
}

// next returns the next line without its terminator or carriage return.
func (l *lineReader) next() (string, error) {
	if l.done {
		return "", io.EOF
	}
	raw, err := l.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) {
		l.done = true
		if raw == "" {
			return "", io.EOF
		}
	}
	l.number++
	line := strings.TrimSuffix(raw, "\n")
	line = strings.TrimSuffix(line, "\r")
	if l.number == 1 {
		line = strings.TrimPrefix(line, utf8BOM)
	}
	return line, nil
}

// Serialize writes the document in the SRT block grammar. Each record is
// followed by exactly one blank line.
func (d Document) Serialize(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, rec := range d.Records {
		if _, err := fmt.Fprintf(bw, "%d\n%s%s%s\n%s\n\n", rec.Index, rec.Start, TimeRangeDelimiter, rec.End, rec.Text); err != nil {
			return fmt.Errorf("write srt: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// WriteFile atomically writes the document to path. A failed write leaves no
// partial file behind.
func WriteFile(path string, doc Document) error {
	return fileutil.WriteAtomic(path, 0o644, doc.Serialize)
}

// String renders the document in the SRT block grammar.
func (d Document) String() string {
	var sb strings.Builder
	_ = d.Serialize(&sb)
	return sb.String()
}
