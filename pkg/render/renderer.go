package render

import (
	"context"

	"github.com/goliatone/go-scholarform/pkg/model"
)

// Renderer converts a FormModel plus per-request state into a byte
// representation (HTML page, printable summary, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
