package render

import (
	"context"

	"github.com/goliatone/go-taskform/pkg/session"
)

// Renderer converts a form session snapshot into a byte representation
// (plain text, HTML, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snap session.Snapshot, options RenderOptions) ([]byte, error)
}
