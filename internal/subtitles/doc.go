// Package subtitles models SRT subtitle documents and the pure transformations
// the translation pipeline applies to them.
//
// A Document is an ordered list of Records parsed from the SRT block grammar
// (index line, "start --> end" line, one or more text lines, blank line).
// Timecodes are opaque strings: they are copied verbatim and never
// interpreted, so a document written back out keeps its original timing.
//
// # Entry Points
//
// Parse / ParseFile: read the block grammar into a Document.
// Document.Serialize / Document.String: write it back out, byte-for-byte
// for canonical input.
// SplitByTokenBudget / SplitByCount: plan chunks for a length-limited
// generation service. Concat reverses any split.
// Document.Payload / Document.ApplyFrames: encode a chunk as blank-line
// delimited frames and zip a translated response back onto its records.
//
// # Failure Policy
//
// Parsing is all-or-nothing. A malformed unit aborts the whole document with a
// *ParseError; reader failures propagate unchanged. Planning never fails: a
// record heavier than the token budget is isolated in its own chunk.
package subtitles
