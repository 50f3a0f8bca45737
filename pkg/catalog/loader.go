package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownCategory is returned when a category key is not in the catalog.
	ErrUnknownCategory = errors.New("catalog: unknown category")
	// ErrUnknownOption is returned when a key is not offered by its category.
	ErrUnknownOption = errors.New("catalog: unknown option")
)

type documentFile struct {
	Categories []Category `json:"categories" yaml:"categories"`
}

// LoadFS walks fsys and merges every JSON/YAML catalog document it finds, in
// lexical path order. Duplicate categories across files, duplicate option keys
// and unknown input types are rejected.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	cat := &Catalog{index: make(map[string]int)}
	if fsys == nil {
		return cat, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		for _, raw := range doc.Categories {
			category, err := normaliseCategory(raw, path)
			if err != nil {
				return err
			}
			if _, exists := cat.index[category.Key]; exists {
				return fmt.Errorf("catalog: duplicate category %q (file %s)", category.Key, path)
			}
			cat.index[category.Key] = len(cat.categories)
			cat.categories = append(cat.categories, category)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("catalog: file %s is empty", source)
	}
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("catalog: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("catalog: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseCategory(raw Category, source string) (Category, error) {
	category := cloneCategory(raw)
	category.Key = normaliseKey(raw.Key)
	if category.Key == "" {
		return Category{}, fmt.Errorf("catalog: file %s defines a category without key", source)
	}
	if strings.TrimSpace(category.Name) == "" {
		category.Name = category.Key
	}
	category.Icon = SanitizeIcon(raw.Icon)

	seen := make(map[string]struct{}, len(category.Options))
	for i := range category.Options {
		opt := &category.Options[i]
		opt.Key = normaliseKey(opt.Key)
		if opt.Key == "" {
			return Category{}, fmt.Errorf("catalog: category %q (file %s) has an option without key", category.Key, source)
		}
		if _, dup := seen[opt.Key]; dup {
			return Category{}, fmt.Errorf("catalog: category %q (file %s) defines duplicate option %q", category.Key, source, opt.Key)
		}
		seen[opt.Key] = struct{}{}

		if opt.InputType == "" {
			opt.InputType = InputText
		}
		if !opt.InputType.valid() {
			return Category{}, fmt.Errorf("catalog: option %s.%s (file %s) has unknown input type %q", category.Key, opt.Key, source, opt.InputType)
		}
		if opt.InputType.HasChoices() && len(opt.Choices) == 0 {
			return Category{}, fmt.Errorf("catalog: option %s.%s (file %s) needs choices for input type %q", category.Key, opt.Key, source, opt.InputType)
		}
		if strings.TrimSpace(opt.Label) == "" {
			opt.Label = opt.Key
		}
	}
	return category, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
