package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-taskform/pkg/form"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// readFormData decodes a record file. YAML is used for .yaml/.yml, JSON for
// everything else.
func readFormData(path string) (form.FormData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return form.FormData{}, fmt.Errorf("read %s: %w", path, err)
	}

	data := form.Empty()
	if isYAMLPath(path) {
		err = yaml.Unmarshal(raw, &data)
	} else {
		err = json.Unmarshal(raw, &data)
	}
	if err != nil {
		return form.FormData{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if data.Metadata == nil {
		data.Metadata = []form.MetadataEntry{}
	}
	return data, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// writeEncoded writes v as indented JSON or YAML.
func writeEncoded(w io.Writer, v any, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
