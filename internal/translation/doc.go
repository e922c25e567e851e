// Package translation turns a parsed subtitle document into its translation.
//
// The Orchestrator plans the document into token-budget chunks, sends each
// chunk's payload to a Service concurrently (bounded by Config.Concurrency),
// maps every reply back onto its chunk's records, and reassembles the chunks
// in plan order regardless of the order replies arrive in. The first failure
// stops further dispatch and is returned as a *ChunkError; requests already in
// flight are allowed to finish and their results are discarded.
//
// Retrying transient provider failures is the Service's concern, not the
// orchestrator's.
package translation
