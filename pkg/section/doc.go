// Package section implements the per-section state holders of an application
// form. Each controller owns the state of one section, applies explicit
// patches through pure reducers and pushes every accepted change to its
// subscribers. Word limits are enforced on write: an over-limit edit is
// rejected and the previous state is kept.
package section
