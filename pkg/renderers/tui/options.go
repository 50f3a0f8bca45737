package tui

import (
	"go.uber.org/zap"
)

// DefaultDateLayout is the layout accepted by the time range prompts.
const DefaultDateLayout = "2006-01-02"

// Theme captures optional prefixes the flow applies to messages it prints.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the flow.
type Option func(*Flow)

// WithPromptDriver overrides the prompt driver used by the flow.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Flow) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithDateLayout overrides the date layout for time range prompts.
func WithDateLayout(layout string) Option {
	return func(f *Flow) {
		if layout != "" {
			f.dateLayout = layout
		}
	}
}

// WithTemplatePrompt asks whether to start from the built-in template before
// any field prompt.
func WithTemplatePrompt(enabled bool) Option {
	return func(f *Flow) {
		f.offerTemplate = enabled
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Flow) {
		f.theme = theme
	}
}

// WithLogger sets the logger used for flow diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Flow) {
		if logger != nil {
			f.logger = logger
		}
	}
}
