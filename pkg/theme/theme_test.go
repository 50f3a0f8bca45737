package theme_test

import (
	"errors"
	"strings"
	"testing"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-taskform/pkg/theme"
)

func TestResolve_MergesVariantTokens(t *testing.T) {
	reg := theme.Default()

	light, err := reg.Resolve(theme.DefaultName, theme.VariantLight)
	if err != nil {
		t.Fatalf("resolve light: %v", err)
	}
	dark, err := reg.Resolve(theme.DefaultName, theme.VariantDark)
	if err != nil {
		t.Fatalf("resolve dark: %v", err)
	}

	if light.Tokens["surface"] == dark.Tokens["surface"] {
		t.Fatalf("expected variant override for surface token")
	}
	if dark.Tokens["marker.valid"] != light.Tokens["marker.valid"] {
		t.Fatalf("expected base tokens inherited by variant")
	}
	if dark.CSSVars["--surface"] != dark.Tokens["surface"] {
		t.Fatalf("css vars not derived from tokens: %v", dark.CSSVars)
	}
	if _, ok := dark.CSSVars["--marker-valid"]; !ok {
		t.Fatalf("expected dotted token names normalised in css vars")
	}
}

func TestResolve_Errors(t *testing.T) {
	reg := theme.Default()
	if _, err := reg.Resolve("missing", ""); !errors.Is(err, theme.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := reg.Resolve(theme.DefaultName, "sepia"); !errors.Is(err, theme.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestRegister_RejectsDuplicates(t *testing.T) {
	reg := theme.Default()
	if err := reg.Register(theme.Manifest()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(&gotheme.Manifest{Name: "  "}); err == nil {
		t.Fatalf("expected missing name error")
	}
}

func TestConfig_Helpers(t *testing.T) {
	var nilCfg *theme.Config
	if got := nilCfg.Token("brand", "fallback"); got != "fallback" {
		t.Fatalf("nil config should return fallback, got %q", got)
	}
	if nilCfg.CSSVarsStyle() != "" {
		t.Fatalf("nil config should render empty style")
	}

	cfg, err := theme.Default().Resolve(theme.DefaultName, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	style := cfg.CSSVarsStyle()
	if !strings.HasPrefix(style, "--brand: ") || !strings.HasSuffix(style, ";") {
		t.Fatalf("unexpected style: %q", style)
	}
}
