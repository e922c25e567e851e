package logging

import (
	"context"
	"log/slog"

	"lingosub/internal/services"
)

// Structured field keys shared across packages.
const (
	FieldComponent     = "component"
	FieldStage         = "stage"
	FieldChunk         = "chunk"
	FieldCorrelationID = "correlation_id"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact tells the operator what a warning costs them.
	FieldImpact = "impact"
)

// WithContext returns logger extended with the run id, stage and chunk index
// stored in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	var args []any
	if id, ok := services.RequestIDFromContext(ctx); ok {
		args = append(args, slog.String(FieldCorrelationID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		args = append(args, slog.String(FieldStage, stage))
	}
	if chunk, ok := services.ChunkFromContext(ctx); ok {
		args = append(args, slog.Int(FieldChunk, chunk))
	}
	if len(args) == 0 {
		return logger
	}
	return logger.With(args...)
}
