// Package scholarform exposes the common entry points of the module: the
// orchestrator constructor, a one-call HTML render and the embedded
// templates and stylesheet.
package scholarform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/orchestrator"
	"github.com/goliatone/go-scholarform/pkg/render"
)

// Kind aliases form.Kind.
type Kind = form.Kind

// Form kinds.
const (
	Trade      = form.Trade
	University = form.University
)

// RenderOptions describes per-request overrides that renderers use to
// prefill values or surface validation errors.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderHTML renders an empty form of kind with the html renderer.
func RenderHTML(ctx context.Context, kind Kind, options ...orchestrator.Option) ([]byte, error) {
	orch := orchestrator.New(options...)
	session, err := orch.NewSession(kind)
	if err != nil {
		return nil, fmt.Errorf("scholarform: %w", err)
	}
	return orch.Render(ctx, orchestrator.Request{Session: session})
}
