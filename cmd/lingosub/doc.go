// Package main hosts the lingosub CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, layers
// command flags over it, and hands parsed subtitle documents to the
// translation orchestrator. Errors carry services markers so the process exit
// status distinguishes bad input, configuration problems and provider
// failures.
package main
