package translation

import (
	"context"
	"fmt"
)

// Config controls one translation run.
type Config struct {
	TargetLanguage string
	Model          string
	Temperature    float64
	// MaxTokens is the per-chunk word budget and the completion limit sent
	// with each request.
	MaxTokens int
	// Concurrency caps in-flight requests. Zero or less means one request
	// per chunk, all at once.
	Concurrency int
}

// Request carries the per-call parameters handed to a Service.
type Request struct {
	TargetLanguage string
	Model          string
	Temperature    float64
	MaxTokens      int
}

func (c Config) request() Request {
	return Request{
		TargetLanguage: c.TargetLanguage,
		Model:          c.Model,
		Temperature:    c.Temperature,
		MaxTokens:      c.MaxTokens,
	}
}

// Service translates one payload of blank-line separated cue texts and
// returns the translated payload in the same framing.
type Service interface {
	Translate(ctx context.Context, text string, req Request) (string, error)
}

// ServiceFunc adapts a function to the Service interface.
type ServiceFunc func(ctx context.Context, text string, req Request) (string, error)

func (f ServiceFunc) Translate(ctx context.Context, text string, req Request) (string, error) {
	return f(ctx, text, req)
}

// ChunkError reports the failure of one planned chunk.
type ChunkError struct {
	Chunk int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("translate chunk %d: %v", e.Chunk, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// Progress describes a completed chunk.
type Progress struct {
	Chunk     int
	Completed int
	Total     int
	Records   int
}
