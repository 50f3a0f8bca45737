// Package preview renders form session snapshots as plain text, HTML or JSON.
// Text and HTML output go through the pongo2 template engine; themes and the
// catalog are passed per call through render.RenderOptions.
package preview

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-taskform/pkg/render"
	rendertemplate "github.com/goliatone/go-taskform/pkg/render/template"
	gotemplate "github.com/goliatone/go-taskform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-taskform/pkg/session"
)

const (
	NameText = "text"
	NameHTML = "html"
	NameJSON = "json"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide summary.tpl and form.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer executes one named template against the snapshot view.
type Renderer struct {
	name        string
	contentType string
	template    string
	templates   rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// NewText returns the plain text summary renderer.
func NewText(options ...Option) (*Renderer, error) {
	return newTemplated(NameText, "text/plain; charset=utf-8", "summary.tpl", options)
}

// NewHTML returns the HTML form preview renderer.
func NewHTML(options ...Option) (*Renderer, error) {
	return newTemplated(NameHTML, "text/html; charset=utf-8", "form.tpl", options)
}

func newTemplated(name, contentType, tpl string, options []Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		e, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("preview %s: configure template renderer: %w", name, err)
		}
		engine = e
	}

	return &Renderer{
		name:        name,
		contentType: contentType,
		template:    tpl,
		templates:   engine,
	}, nil
}

func (r *Renderer) Name() string {
	return r.name
}

func (r *Renderer) ContentType() string {
	return r.contentType
}

func (r *Renderer) Render(ctx context.Context, snap session.Snapshot, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("preview %s: template renderer is nil", r.name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := r.templates.RenderTemplate(r.template, buildView(snap, options))
	if err != nil {
		return nil, fmt.Errorf("preview %s: render template: %w", r.name, err)
	}
	return []byte(out), nil
}

// Defaults builds the text, HTML and JSON renderers sharing options.
func Defaults(options ...Option) ([]render.Renderer, error) {
	text, err := NewText(options...)
	if err != nil {
		return nil, err
	}
	html, err := NewHTML(options...)
	if err != nil {
		return nil, err
	}
	return []render.Renderer{text, html, NewJSON()}, nil
}

// NewRegistry returns a registry holding the default renderers with text as
// the default.
func NewRegistry(options ...Option) (*render.Registry, error) {
	renderers, err := Defaults(options...)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(renderers...)
}
