package catalog

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-taskform/pkg/form"
)

// Categories returns every category in catalog order.
func (c *Catalog) Categories() []Category {
	if c == nil {
		return nil
	}
	out := make([]Category, len(c.categories))
	for i, category := range c.categories {
		out[i] = cloneCategory(category)
	}
	return out
}

// Len reports the number of categories.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.categories)
}

// Category looks up a category by key.
func (c *Catalog) Category(key string) (Category, bool) {
	if c == nil {
		return Category{}, false
	}
	idx, ok := c.index[normaliseKey(key)]
	if !ok {
		return Category{}, false
	}
	return cloneCategory(c.categories[idx]), true
}

// Option resolves a (category, key) pair.
func (c *Catalog) Option(category, key string) (Option, error) {
	cat, ok := c.Category(category)
	if !ok {
		return Option{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	opt, ok := cat.Option(normaliseKey(key))
	if !ok {
		return Option{}, fmt.Errorf("%w: %q in category %q", ErrUnknownOption, key, category)
	}
	return opt, nil
}

// Has reports whether the pair exists.
func (c *Catalog) Has(category, key string) bool {
	_, err := c.Option(category, key)
	return err == nil
}

// Label resolves the human readable label for a pair, in the form
// "Category Name: Option Label". Unknown pairs fall back to "category.key".
func (c *Catalog) Label(category, key string) string {
	cat, ok := c.Category(category)
	if !ok {
		return category + "." + key
	}
	opt, ok := cat.Option(key)
	if !ok {
		return cat.Name + ": " + key
	}
	return cat.Name + ": " + opt.Label
}

// NewEntry builds a metadata entry for a catalog-backed pair with a freshly
// generated id and an empty value.
func (c *Catalog) NewEntry(category, key string) (form.MetadataEntry, error) {
	opt, err := c.Option(category, key)
	if err != nil {
		return form.MetadataEntry{}, err
	}
	return form.MetadataEntry{
		ID:       uuid.NewString(),
		Category: normaliseKey(category),
		Key:      opt.Key,
	}, nil
}

// ValueValid applies the generic free-text rule shared by every input type.
func (c *Catalog) ValueValid(value string) bool {
	return form.MetadataValueValid(value)
}

// Check verifies every metadata entry in data references a catalog pair.
func (c *Catalog) Check(data form.FormData) error {
	for _, entry := range data.Metadata {
		if _, err := c.Option(entry.Category, entry.Key); err != nil {
			return fmt.Errorf("catalog: entry %s: %w", entry.ID, err)
		}
	}
	return nil
}
