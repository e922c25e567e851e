package services

import (
	"errors"
	"fmt"
	"strings"
)

// Markers classify failures across packages; match them with errors.Is.
var (
	ErrExternalTool  = errors.New("external service error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTransient     = errors.New("transient failure")
)

// Process exit codes reported by the CLI for each failure class.
const (
	ExitFailure       = 1
	ExitValidation    = 2
	ExitConfiguration = 3
	ExitExternal      = 4
)

// Wrap prefixes err with "stage: operation: message" and tags the result with
// marker so ExitCode can classify it. A nil marker means ErrTransient.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a pipeline error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return ExitValidation
	case errors.Is(err, ErrConfiguration):
		return ExitConfiguration
	case errors.Is(err, ErrExternalTool):
		return ExitExternal
	default:
		return ExitFailure
	}
}

func buildDetail(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	if len(kept) == 0 {
		return "service failure"
	}
	return strings.Join(kept, ": ")
}
