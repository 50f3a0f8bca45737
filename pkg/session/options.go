package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/pkg/catalog"
	"github.com/goliatone/go-taskform/pkg/form"
	"github.com/goliatone/go-taskform/pkg/submit"
)

// DefaultSuccessReset is how long the success phase stays visible.
const DefaultSuccessReset = 3 * time.Second

// Option configures a Controller.
type Option func(*Controller)

// WithCatalog sets the metadata catalog used by AddMetadata. Defaults to
// catalog.Default().
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *Controller) {
		if cat != nil {
			c.catalog = cat
		}
	}
}

// WithSubmitter replaces the simulated backend.
func WithSubmitter(s submit.Submitter) Option {
	return func(c *Controller) {
		if s != nil {
			c.submitter = s
		}
	}
}

// WithSuccessReset overrides how long the success phase lasts before the
// controller returns to idle.
func WithSuccessReset(d time.Duration) Option {
	return func(c *Controller) {
		if d < 0 {
			d = 0
		}
		c.successReset = d
	}
}

// WithInitial seeds the record instead of starting empty.
func WithInitial(data form.FormData) Option {
	return func(c *Controller) {
		c.data = data.Clone()
	}
}

// OnSuccess registers the parent completion callback invoked after every
// successful submission.
func OnSuccess(fn func(submit.Receipt)) Option {
	return func(c *Controller) {
		c.onSuccess = fn
	}
}

// OnChange registers a listener notified after every state change.
func OnChange(fn func(Snapshot)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.subscribeLocked(fn)
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}
