package translation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"lingosub/internal/logging"
	"lingosub/internal/services"
	"lingosub/internal/subtitles"
)

const stageTranslate = "translate"

// Orchestrator coordinates chunked, concurrent translation of a document.
type Orchestrator struct {
	service  Service
	logger   *slog.Logger
	progress func(Progress)
}

// Option customizes the orchestrator.
type Option func(*Orchestrator)

// WithProgress registers a callback invoked once per completed chunk, in
// completion order. Callbacks run on a single goroutine.
func WithProgress(fn func(Progress)) Option {
	return func(o *Orchestrator) {
		o.progress = fn
	}
}

// New builds an orchestrator around service. A nil logger discards output.
func New(service Service, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		service: service,
		logger:  logging.NewComponentLogger(logger, "orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type chunkResult struct {
	index int
	doc   subtitles.Document
	err   error
}

// Translate plans doc by cfg.MaxTokens, translates every chunk and returns the
// reassembled document in original record order. On any failure it returns an
// empty document and the first error observed.
func (o *Orchestrator) Translate(ctx context.Context, doc subtitles.Document, cfg Config) (subtitles.Document, error) {
	if o.service == nil {
		return subtitles.Document{}, services.Wrap(services.ErrConfiguration, stageTranslate, "orchestrate", "no translation service configured", nil)
	}
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	ctx = services.WithStage(ctx, stageTranslate)
	logger := logging.WithContext(ctx, o.logger)

	language := cfg.TargetLanguage
	if language == "" {
		language = doc.Language
	}

	chunks := subtitles.SplitByTokenBudget(doc, cfg.MaxTokens)
	if len(chunks) == 0 {
		logger.Info("nothing to translate", logging.Int("records", 0))
		return subtitles.Document{Language: language}, nil
	}

	limit := cfg.Concurrency
	if limit <= 0 || limit > len(chunks) {
		limit = len(chunks)
	}
	logger.Info("translation started",
		logging.String(logging.FieldEventType, "translation_start"),
		logging.Int("records", doc.Len()),
		logging.Int("tokens", doc.Tokens()),
		logging.Int("chunks", len(chunks)),
		logging.Int("concurrency", limit),
		logging.String("target_language", cfg.TargetLanguage),
		logging.String("model", cfg.Model),
	)
	started := time.Now()

	// dispatchCtx only gates dispatch. Requests run on ctx so a failure in one
	// chunk never aborts its siblings mid-flight.
	dispatchCtx, stopDispatch := context.WithCancel(ctx)
	defer stopDispatch()

	sem := semaphore.NewWeighted(int64(limit))
	results := make(chan chunkResult, len(chunks))
	req := cfg.request()

	go func() {
		for i, chunk := range chunks {
			if dispatchCtx.Err() != nil {
				return
			}
			if err := sem.Acquire(dispatchCtx, 1); err != nil {
				return
			}
			go func(index int, chunk subtitles.Document) {
				defer sem.Release(1)
				results <- o.translateChunk(ctx, index, chunk, req)
			}(i, chunk)
		}
	}()

	slots := make([]subtitles.Document, len(chunks))
	sampler := logging.NewProgressSampler(25)
	for completed := 0; completed < len(chunks); {
		select {
		case res := <-results:
			if res.err != nil {
				stopDispatch()
				logging.ErrorWithContext(logger, "translation failed", "translation_failed",
					logging.Int(logging.FieldChunk, res.index),
					logging.Int("completed_chunks", completed),
					logging.Int("chunks", len(chunks)),
					logging.Error(res.err),
					logging.String(logging.FieldErrorHint, "no output is written; rerun once the cause is fixed"),
				)
				return subtitles.Document{}, res.err
			}
			slots[res.index] = res.doc
			completed++
			if sampler.ShouldLog(completed, len(chunks)) {
				logger.Info("translation progress",
					logging.String(logging.FieldEventType, "translation_progress"),
					logging.Int("completed_chunks", completed),
					logging.Int("chunks", len(chunks)),
				)
			}
			if o.progress != nil {
				o.progress(Progress{Chunk: res.index, Completed: completed, Total: len(chunks), Records: res.doc.Len()})
			}
		case <-ctx.Done():
			stopDispatch()
			return subtitles.Document{}, ctx.Err()
		}
	}

	out := subtitles.Concat(slots...)
	out.Language = language
	logger.Info("translation completed",
		logging.String(logging.FieldEventType, "translation_complete"),
		logging.Int("records", out.Len()),
		logging.Int("chunks", len(chunks)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return out, nil
}

func (o *Orchestrator) translateChunk(ctx context.Context, index int, chunk subtitles.Document, req Request) chunkResult {
	ctx = services.WithChunk(ctx, index)
	logger := logging.WithContext(ctx, o.logger)
	first, last, _ := chunk.IndexRange()
	logger.Debug("chunk dispatched",
		logging.Int("first_index", first),
		logging.Int("last_index", last),
		logging.Int("records", chunk.Len()),
		logging.Int("tokens", chunk.Tokens()),
	)

	started := time.Now()
	response, err := o.service.Translate(ctx, chunk.Payload(), req)
	if err != nil {
		return chunkResult{index: index, err: &ChunkError{Chunk: index, Err: err}}
	}

	translated, err := chunk.ApplyFrames(response)
	if err != nil {
		var mismatch *subtitles.FrameMismatchError
		if errors.As(err, &mismatch) {
			logging.WarnWithContext(logger, "response frame count mismatch", "frame_mismatch",
				logging.Int("expected_frames", mismatch.Want),
				logging.Int("received_frames", mismatch.Got),
				logging.String(logging.FieldErrorHint, "the model merged or split cues; retry or lower max_tokens"),
				logging.String(logging.FieldImpact, "translation aborted"),
			)
		}
		return chunkResult{index: index, err: &ChunkError{Chunk: index, Err: err}}
	}
	translated.Language = req.TargetLanguage

	logger.Debug("chunk translated",
		logging.Int("records", translated.Len()),
		logging.Duration("elapsed", time.Since(started)),
	)
	return chunkResult{index: index, doc: translated}
}
