package subtitles

import (
	"errors"
	"fmt"
	"strings"
)

// FrameDelimiter separates record texts in a translation payload.
const FrameDelimiter = "\n\n"

// ErrResponseLengthMismatch is matched by FrameMismatchError.
var ErrResponseLengthMismatch = errors.New("response length mismatch")

// FrameMismatchError reports a response whose frame count differs from the
// number of records it must be applied to.
type FrameMismatchError struct {
	Want int
	Got  int
}

func (e *FrameMismatchError) Error() string {
	return fmt.Sprintf("response length mismatch: expected %d frames, got %d", e.Want, e.Got)
}

func (e *FrameMismatchError) Is(target error) bool {
	return target == ErrResponseLengthMismatch
}

// Payload joins the record texts with FrameDelimiter in record order.
func (d Document) Payload() string {
	texts := make([]string, len(d.Records))
	for i, rec := range d.Records {
		texts[i] = rec.Text
	}
	return strings.Join(texts, FrameDelimiter)
}

// SplitFrames breaks a response into blank-line delimited frames. Surrounding
// whitespace is trimmed; line breaks inside a frame are kept.
func SplitFrames(response string) []string {
	normalized := strings.ReplaceAll(response, "\r\n", "\n")
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return nil
	}
	raw := strings.Split(normalized, FrameDelimiter)
	frames := make([]string, 0, len(raw))
	for _, frame := range raw {
		frame = strings.Trim(frame, "\n")
		if strings.TrimSpace(frame) == "" {
			// Runs of three or more newlines leave empty fragments behind.
			continue
		}
		frames = append(frames, frame)
	}
	return frames
}

// ApplyFrames zips the frames of response positionally onto the document's
// records, replacing only their text. The frame count must equal the record
// count.
func (d Document) ApplyFrames(response string) (Document, error) {
	frames := SplitFrames(response)
	if len(frames) != len(d.Records) {
		return Document{}, &FrameMismatchError{Want: len(d.Records), Got: len(frames)}
	}
	out := Document{Records: make([]Record, len(d.Records)), Language: d.Language}
	for i, rec := range d.Records {
		out.Records[i] = rec.WithText(frames[i])
	}
	return out, nil
}
