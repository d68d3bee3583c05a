// Package orchestrator wires sessions, renderers and the submission gateway
// together so the HTTP server and the CLI share a single entry point.
package orchestrator
