package theme

import gotheme "github.com/goliatone/go-theme"

// Manifest returns the built-in report center theme with light and dark
// variants.
func Manifest() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    DefaultName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":          "#2563eb",
			"surface":        "#ffffff",
			"text":           "#111827",
			"muted":          "#6b7280",
			"valid":          "#16a34a",
			"invalid":        "#dc2626",
			"marker.valid":   "[ok]",
			"marker.invalid": "[!!]",
		},
		Variants: map[string]gotheme.Variant{
			VariantLight: {},
			VariantDark: {
				Tokens: map[string]string{
					"brand":   "#60a5fa",
					"surface": "#111827",
					"text":    "#f9fafb",
					"muted":   "#9ca3af",
					"valid":   "#4ade80",
					"invalid": "#f87171",
				},
			},
		},
	}
}
