// Package form ties the section controllers of one application together.
//
// A Session is the Go analogue of one open application: it owns a controller
// per section, reduces their change notifications into an immutable
// Snapshot, validates required fields before submit and resets itself after
// a successful delivery. Two variants are supported, Trade and University,
// which differ in their essay prompts and word limits.
package form
