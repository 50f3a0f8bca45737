// Package taskform is the entry point for the report center task creation
// form: a form session controller with field validation, a simulated
// submission flow, a static metadata catalog and preview renderers.
package taskform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-taskform/pkg/catalog"
	"github.com/goliatone/go-taskform/pkg/contract"
	"github.com/goliatone/go-taskform/pkg/form"
	"github.com/goliatone/go-taskform/pkg/render"
	"github.com/goliatone/go-taskform/pkg/renderers/preview"
	"github.com/goliatone/go-taskform/pkg/session"
	"github.com/goliatone/go-taskform/pkg/submit"
)

// FormData is the record collected by the form.
type FormData = form.FormData

// Validity aliases the derived field predicates and word counts.
type Validity = form.Validity

// Snapshot is the controller view handed to listeners and renderers.
type Snapshot = session.Snapshot

// Receipt is returned by a successful submission.
type Receipt = submit.Receipt

// RenderOptions describes per-request renderer inputs.
type RenderOptions = render.RenderOptions

// ErrorMapping groups external error messages by form field.
type ErrorMapping = render.ErrorMapping

// Controller owns one form session.
type Controller = session.Controller

// NewSession constructs a form session controller with the embedded catalog
// and the simulated submitter unless options override them.
func NewSession(options ...session.Option) *Controller {
	return session.New(options...)
}

// Template returns the built-in example record.
func Template() FormData {
	return form.Template()
}

// Validate derives the field predicates for data.
func Validate(data FormData) Validity {
	return form.Validate(data)
}

// DefaultCatalog returns the embedded metadata catalog.
func DefaultCatalog() *catalog.Catalog {
	return catalog.Default()
}

// LoadCatalog reads a metadata catalog from JSON or YAML files in fsys.
func LoadCatalog(fsys fs.FS) (*catalog.Catalog, error) {
	return catalog.LoadFS(fsys)
}

// NewRendererRegistry returns a registry with the text, HTML and JSON preview
// renderers. Text is the default.
func NewRendererRegistry(options ...preview.Option) (*render.Registry, error) {
	return preview.NewRegistry(options...)
}

// CheckPayload validates data against the task creation contract and the
// embedded catalog.
func CheckPayload(ctx context.Context, data FormData) error {
	return contract.NewValidator(contract.WithCatalog(catalog.Default())).Validate(ctx, data)
}

// PayloadViolations lists every contract problem with data, grouped by field
// so it can be passed straight into RenderOptions.Errors.
func PayloadViolations(ctx context.Context, data FormData) (ErrorMapping, error) {
	violations, err := contract.NewValidator(contract.WithCatalog(catalog.Default())).Violations(ctx, data)
	if err != nil {
		return ErrorMapping{}, err
	}
	return render.MapErrorPayload(violations), nil
}
