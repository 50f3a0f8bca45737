// Package testsupport holds fixture and golden helpers shared by package
// tests.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-taskform/pkg/form"
)

// MustLoadFormData loads a JSON or YAML fixture into a FormData record.
func MustLoadFormData(t *testing.T, path string) form.FormData {
	t.Helper()

	data, err := LoadFormData(path)
	if err != nil {
		t.Fatalf("load form data: %v", err)
	}
	return data
}

// LoadFormData reads a FormData fixture, picking the decoder from the file
// extension. Callers outside *testing.T get the error back.
func LoadFormData(path string) (form.FormData, error) {
	if path == "" {
		return form.FormData{}, errors.New("testsupport: form data path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return form.FormData{}, fmt.Errorf("testsupport: read form data: %w", err)
	}

	out := form.Empty()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &out)
	default:
		err = json.Unmarshal(raw, &out)
	}
	if err != nil {
		return form.FormData{}, fmt.Errorf("testsupport: decode form data: %w", err)
	}
	if out.Metadata == nil {
		out.Metadata = []form.MetadataEntry{}
	}
	return out, nil
}

// ValidFormData returns a small record that passes every validity predicate.
func ValidFormData() form.FormData {
	data := form.Empty()
	data.ReportName = "Weekly phishing review"
	data.Goal = "Summarise phishing campaigns targeting finance staff"
	data.AnalysisType = form.AnalysisSituational
	data.Background = "Several finance employees reported credential harvesting emails impersonating the payroll provider last week"
	data.TimeRange = &form.TimeRange{
		Start: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.May, 7, 0, 0, 0, 0, time.UTC),
	}
	return data
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
