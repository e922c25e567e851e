// Package testsupport holds shared fixtures for lingosub tests: temp
// configurations, SRT files, and a fake chat completions provider.
package testsupport
