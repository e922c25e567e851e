// Package services defines shared utilities consumed by the translation
// pipeline and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run correlation identifiers, stage names,
//     and chunk plan indexes for logging.
//   - Structured error markers plus the Wrap helper, and ExitCode which turns
//     a marked failure into a CLI exit status.
//
// Use these helpers when wiring new pipeline steps so error classification and
// observability stay uniform.
package services
