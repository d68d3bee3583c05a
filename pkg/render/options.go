package render

import theme "github.com/goliatone/go-theme"

// Submission status kinds surfaced by renderers.
const (
	StatusSuccess    = "success"
	StatusError      = "error"
	StatusSubmitting = "submitting"
)

// Status is the banner shown above the form after a submit attempt.
type Status struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Method overrides the HTTP method declared by the form model.
	Method string
	// Action overrides the form endpoint.
	Action string
	// Values pre-populates rendered controls using dotted field paths
	// ("personal.email", "academic.0.school").
	Values map[string]any
	// Entries holds the number of entries of each repeated section.
	Entries map[string]int
	// Errors surfaces validation feedback keyed by field path.
	Errors map[string][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// Status is the outcome banner of the last submit attempt.
	Status *Status
	// Submitting disables the submit control while a submission is in flight.
	Submitting bool
	// HiddenFields are emitted as hidden inputs (CSRF tokens and similar).
	HiddenFields map[string]string
	// Theme carries the resolved go-theme configuration.
	Theme *theme.RendererConfig
}
