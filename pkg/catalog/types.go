package catalog

import "strings"

// InputType tags the widget used to capture an option value.
type InputType string

const (
	InputText         InputType = "text"
	InputAutocomplete InputType = "autocomplete"
	InputEnum         InputType = "enum"
	InputMultiSelect  InputType = "multiselect"
	InputDateTime     InputType = "datetime"
	InputRange        InputType = "range"
)

func (t InputType) valid() bool {
	switch t {
	case InputText, InputAutocomplete, InputEnum, InputMultiSelect, InputDateTime, InputRange:
		return true
	default:
		return false
	}
}

// HasChoices reports whether the input type selects from a fixed list.
func (t InputType) HasChoices() bool {
	return t == InputEnum || t == InputMultiSelect
}

// Option is one selectable key inside a category.
type Option struct {
	Key         string    `json:"key" yaml:"key"`
	Label       string    `json:"label" yaml:"label"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Examples    []string  `json:"examples,omitempty" yaml:"examples,omitempty"`
	InputType   InputType `json:"inputType" yaml:"inputType"`
	Choices     []string  `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// Category groups related options under a display name and icon.
type Category struct {
	Key     string   `json:"key" yaml:"key"`
	Name    string   `json:"name" yaml:"name"`
	Icon    string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Options []Option `json:"options" yaml:"options"`
}

// Option returns the option with the given key.
func (c Category) Option(key string) (Option, bool) {
	for _, opt := range c.Options {
		if opt.Key == key {
			return opt, true
		}
	}
	return Option{}, false
}

// Catalog is the loaded, immutable category set. Category order follows the
// source documents.
type Catalog struct {
	categories []Category
	index      map[string]int
}

func cloneCategory(c Category) Category {
	out := c
	out.Options = make([]Option, len(c.Options))
	for i, opt := range c.Options {
		cloned := opt
		cloned.Examples = append([]string(nil), opt.Examples...)
		cloned.Choices = append([]string(nil), opt.Choices...)
		out.Options[i] = cloned
	}
	return out
}

func normaliseKey(key string) string {
	return strings.TrimSpace(key)
}
