// Package theme resolves go-theme manifests into the explicit configuration
// handed to preview renderers. The light/dark toggle of the report center is
// expressed as a manifest variant chosen by the caller, never as ambient state.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

const (
	// DefaultName is the built-in report center theme.
	DefaultName = "report-center"
	// VariantLight and VariantDark are the built-in variants.
	VariantLight = "light"
	VariantDark  = "dark"
)

var (
	// ErrUnknownTheme is returned when resolving an unregistered theme.
	ErrUnknownTheme = errors.New("theme: unknown theme")
	// ErrUnknownVariant is returned when the theme has no such variant.
	ErrUnknownVariant = errors.New("theme: unknown variant")
)

// Config is the resolved theme passed to renderers.
type Config struct {
	Name     string
	Variant  string
	Tokens   map[string]string
	CSSVars  map[string]string
	Partials map[string]string
}

// Token returns a token value or fallback when missing.
func (c *Config) Token(key, fallback string) string {
	if c == nil {
		return fallback
	}
	if v, ok := c.Tokens[key]; ok && v != "" {
		return v
	}
	return fallback
}

// CSSVarsStyle renders the CSS custom properties as an inline style value.
func (c *Config) CSSVarsStyle() string {
	if c == nil || len(c.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(c.CSSVars))
	for key := range c.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(c.CSSVars[key])
		b.WriteString(";")
	}
	return b.String()
}

// Registry keeps registered manifests. Manifests are validated through the
// go-theme registry on registration.
type Registry struct {
	mu        sync.RWMutex
	provider  manifestRegistrar
	manifests map[string]*gotheme.Manifest
}

type manifestRegistrar interface {
	Register(*gotheme.Manifest) error
}

// NewRegistry registers the supplied manifests. Pass none to start empty.
func NewRegistry(manifests ...*gotheme.Manifest) (*Registry, error) {
	r := &Registry{
		provider:  gotheme.NewRegistry(),
		manifests: make(map[string]*gotheme.Manifest),
	}
	for _, m := range manifests {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns a registry holding the built-in report center manifest.
func Default() *Registry {
	r, err := NewRegistry(Manifest())
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds a manifest. Duplicate names are rejected.
func (r *Registry) Register(m *gotheme.Manifest) error {
	if m == nil {
		return errors.New("theme: manifest is required")
	}
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return errors.New("theme: manifest name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.manifests[name]; exists {
		return fmt.Errorf("theme: %q already registered", name)
	}
	if err := r.provider.Register(m); err != nil {
		return fmt.Errorf("theme: register %q: %w", name, err)
	}
	r.manifests[name] = m
	return nil
}

// Names lists registered themes.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.manifests))
	for name := range r.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve merges the base manifest with the requested variant. An empty
// variant resolves the base tokens only.
func (r *Registry) Resolve(name, variant string) (*Config, error) {
	r.mu.RLock()
	m, ok := r.manifests[strings.TrimSpace(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	cfg := &Config{
		Name:     m.Name,
		Variant:  strings.TrimSpace(variant),
		Tokens:   mergeStrings(nil, m.Tokens),
		Partials: mergeStrings(nil, m.Templates),
	}

	if cfg.Variant != "" {
		v, ok := m.Variants[cfg.Variant]
		if !ok {
			return nil, fmt.Errorf("%w: %q for theme %q", ErrUnknownVariant, cfg.Variant, m.Name)
		}
		cfg.Tokens = mergeStrings(cfg.Tokens, v.Tokens)
		cfg.Partials = mergeStrings(cfg.Partials, v.Templates)
	}

	cfg.CSSVars = make(map[string]string, len(cfg.Tokens))
	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+strings.ReplaceAll(key, ".", "-")] = value
	}
	return cfg, nil
}

func mergeStrings(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
