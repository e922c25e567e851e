package subtitles

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func framesDoc() Document {
	return Document{Records: []Record{
		{Index: 1, Start: "00:00:01,000", End: "00:00:02,000", Text: "Hello"},
		{Index: 2, Start: "00:00:03,000", End: "00:00:04,000", Text: "Two lines\nof text"},
		{Index: 3, Start: "00:00:05,000", End: "00:00:06,000", Text: "Bye"},
	}}
}

func TestPayload(t *testing.T) {
	assert.Equal(t, "Hello\n\nTwo lines\nof text\n\nBye", framesDoc().Payload())
	assert.Equal(t, "", Document{}.Payload())
}

func TestApplyFramesReplacesTextOnly(t *testing.T) {
	doc := framesDoc()
	out, err := doc.ApplyFrames("Bonjour\n\nDeux lignes\nde texte\n\nAu revoir\n")
	require.NoError(t, err)
	require.Len(t, out.Records, 3)

	for i := range doc.Records {
		assert.Equal(t, doc.Records[i].Index, out.Records[i].Index)
		assert.Equal(t, doc.Records[i].Start, out.Records[i].Start)
		assert.Equal(t, doc.Records[i].End, out.Records[i].End)
	}
	assert.Equal(t, "Bonjour", out.Records[0].Text)
	assert.Equal(t, "Deux lignes\nde texte", out.Records[1].Text)
	assert.Equal(t, "Au revoir", out.Records[2].Text)
	assert.Equal(t, "Hello", doc.Records[0].Text, "source document is not mutated")
}

func TestApplyFramesToleratesCRLFAndExtraBlankLines(t *testing.T) {
	out, err := framesDoc().ApplyFrames("\r\nA\r\n\r\nB\n\n\n\nC\n\n")
	require.NoError(t, err)
	assert.Equal(t, "A", out.Records[0].Text)
	assert.Equal(t, "B", out.Records[1].Text)
	assert.Equal(t, "C", out.Records[2].Text)
}

func TestApplyFramesMismatch(t *testing.T) {
	tests := []struct {
		name     string
		response string
		got      int
	}{
		{"one fewer frame", "A\n\nB", 2},
		{"one extra frame", "A\n\nB\n\nC\n\nD", 4},
		{"empty response", "   ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := framesDoc().ApplyFrames(tt.response)
			require.ErrorIs(t, err, ErrResponseLengthMismatch)
			assert.Empty(t, out.Records)

			var mismatch *FrameMismatchError
			require.True(t, errors.As(err, &mismatch))
			assert.Equal(t, 3, mismatch.Want)
			assert.Equal(t, tt.got, mismatch.Got)
		})
	}
}

func TestPayloadApplyFramesIdentity(t *testing.T) {
	doc := framesDoc()
	out, err := doc.ApplyFrames(doc.Payload())
	require.NoError(t, err)
	assert.Equal(t, doc, out)
}
