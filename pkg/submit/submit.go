// Package submit defines the seam the form controller hands completed records
// to, plus the simulated backend used by the report center. The simulated
// submitter waits a fixed delay and always succeeds.
package submit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/pkg/form"
)

// DefaultDelay mimics network latency for the create-task call.
const DefaultDelay = 1500 * time.Millisecond

// Receipt describes an accepted task.
type Receipt struct {
	TaskID      string        `json:"taskId"`
	SubmittedAt time.Time     `json:"submittedAt"`
	Data        form.FormData `json:"data"`
}

// Submitter accepts a validated record.
type Submitter interface {
	Submit(ctx context.Context, data form.FormData) (Receipt, error)
}

// Func adapts a plain function to Submitter.
type Func func(ctx context.Context, data form.FormData) (Receipt, error)

// Submit calls f.
func (f Func) Submit(ctx context.Context, data form.FormData) (Receipt, error) {
	return f(ctx, data)
}

// Simulated is the in-memory backend. Only context cancellation can make it
// return an error.
type Simulated struct {
	delay  time.Duration
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// Option configures a Simulated submitter.
type Option func(*Simulated)

// WithDelay overrides the artificial latency. Negative values are treated as
// zero.
func WithDelay(d time.Duration) Option {
	return func(s *Simulated) {
		if d < 0 {
			d = 0
		}
		s.delay = d
	}
}

// WithClock overrides the timestamp source used for receipts.
func WithClock(now func() time.Time) Option {
	return func(s *Simulated) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides task id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Simulated) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Simulated) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSimulated constructs the simulated backend with DefaultDelay.
func NewSimulated(options ...Option) *Simulated {
	s := &Simulated{
		delay:  DefaultDelay,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Delay reports the configured latency.
func (s *Simulated) Delay() time.Duration {
	return s.delay
}

// Submit waits for the configured delay and returns a receipt.
func (s *Simulated) Submit(ctx context.Context, data form.FormData) (Receipt, error) {
	if err := Wait(ctx, s.delay); err != nil {
		return Receipt{}, err
	}

	receipt := Receipt{
		TaskID:      s.newID(),
		SubmittedAt: s.now(),
		Data:        data.Clone(),
	}
	s.logger.Debug("task created",
		zap.String("task_id", receipt.TaskID),
		zap.String("report_name", data.ReportName),
		zap.Int("metadata", len(data.Metadata)),
	)
	return receipt, nil
}

// Wait blocks for d or until ctx is done.
func Wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
