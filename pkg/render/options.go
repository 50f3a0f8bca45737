package render

import (
	"github.com/goliatone/go-taskform/pkg/catalog"
	"github.com/goliatone/go-taskform/pkg/theme"
)

// RenderOptions describe per-request data renderers use to customise their
// output. Everything a renderer needs is passed here explicitly.
type RenderOptions struct {
	// Theme carries resolved tokens and CSS variables. Nil renders with
	// renderer defaults.
	Theme *theme.Config
	// Catalog resolves metadata labels and icons. Nil falls back to the
	// embedded catalog.
	Catalog *catalog.Catalog
	// Title overrides the heading shown above the form summary.
	Title string
	// Errors carries externally reported problems, typically the contract
	// violations mapped through MapErrorPayload.
	Errors ErrorMapping
}

// CatalogOrDefault returns the configured catalog or the embedded default.
func (o RenderOptions) CatalogOrDefault() *catalog.Catalog {
	if o.Catalog != nil {
		return o.Catalog
	}
	return catalog.Default()
}
