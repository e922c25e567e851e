// Package translator implements translation.Service against an
// OpenAI-compatible chat completions API.
//
// Each call sends one payload of blank-line separated cue texts with a fixed
// translator persona and returns the model's reply untouched; pairing the
// reply with cues is left to the caller. Failures surface as *ServiceError
// whose Kind separates a missing credential, transport problems, non-2xx
// statuses and replies without usable content. Timeouts, 408, 429 and 5xx
// responses are retried with exponential backoff before giving up.
package translator
