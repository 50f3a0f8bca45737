package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/pkg/catalog"
	"github.com/goliatone/go-taskform/pkg/form"
	"github.com/goliatone/go-taskform/pkg/submit"
)

var (
	// ErrFormInvalid is returned by Submit when a required predicate fails.
	// The form is left untouched.
	ErrFormInvalid = errors.New("session: form is not valid")
	// ErrSubmitInProgress is returned by Submit while another submission is
	// in flight.
	ErrSubmitInProgress = errors.New("session: submission already in progress")
	// ErrClosed is returned once the controller has been closed.
	ErrClosed = errors.New("session: controller closed")
)

// Phase is the submission UI state.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
)

// Snapshot is an immutable view handed to listeners and callers.
type Snapshot struct {
	Data        form.FormData
	Validity    form.Validity
	Phase       Phase
	LastReceipt *submit.Receipt
}

// CanSubmit reports whether the submit control should be enabled.
func (s Snapshot) CanSubmit() bool {
	return s.Phase != PhaseSubmitting && s.Validity.IsFormValid()
}

// Controller owns the state of one form session. It is safe for concurrent
// use; listeners and callbacks are invoked without holding the lock.
type Controller struct {
	mu sync.Mutex

	data     form.FormData
	validity form.Validity
	phase    Phase
	receipt  *submit.Receipt
	closed   bool

	catalog      *catalog.Catalog
	submitter    submit.Submitter
	successReset time.Duration
	resetTimer   *time.Timer
	resetGen     uint64

	onSuccess func(submit.Receipt)
	listeners map[int]func(Snapshot)
	nextID    int

	logger *zap.Logger
}

// New constructs a controller with an empty record, the default catalog and
// the simulated submitter.
func New(options ...Option) *Controller {
	c := &Controller{
		data:         form.Empty(),
		phase:        PhaseIdle,
		successReset: DefaultSuccessReset,
		listeners:    make(map[int]func(Snapshot)),
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.catalog == nil {
		c.catalog = catalog.Default()
	}
	if c.submitter == nil {
		c.submitter = submit.NewSimulated(submit.WithLogger(c.logger))
	}
	c.validity = form.Validate(c.data)
	return c
}

// Dispatch applies action and returns the resulting snapshot.
func (c *Controller) Dispatch(action form.Action) Snapshot {
	c.mu.Lock()
	c.applyLocked(action)
	snap := c.snapshotLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	if action != nil {
		c.logger.Debug("form action applied",
			zap.String("action", action.Kind()),
			zap.Bool("form_valid", snap.Validity.IsFormValid()),
		)
	}
	notify(listeners, snap)
	return snap
}

// SetField is shorthand for dispatching form.SetField.
func (c *Controller) SetField(field form.Field, value string) Snapshot {
	return c.Dispatch(form.SetField{Field: field, Value: value})
}

// SetTimeRange is shorthand for dispatching form.SetTimeRange.
func (c *Controller) SetTimeRange(start, end time.Time) Snapshot {
	return c.Dispatch(form.SetTimeRange{Range: &form.TimeRange{Start: start, End: end}})
}

// AddMetadata creates a catalog-backed entry with a fresh id and appends it.
// Pairs missing from the catalog are rejected.
func (c *Controller) AddMetadata(category, key string) (form.MetadataEntry, error) {
	c.mu.Lock()
	cat := c.catalog
	c.mu.Unlock()

	entry, err := cat.NewEntry(category, key)
	if err != nil {
		return form.MetadataEntry{}, fmt.Errorf("session: add metadata: %w", err)
	}
	c.Dispatch(form.AddMetadata{Entry: entry})
	return entry, nil
}

// UpdateMetadata is shorthand for dispatching form.UpdateMetadata.
func (c *Controller) UpdateMetadata(id, value string) Snapshot {
	return c.Dispatch(form.UpdateMetadata{ID: id, Value: value})
}

// RemoveMetadata is shorthand for dispatching form.RemoveMetadata.
func (c *Controller) RemoveMetadata(id string) Snapshot {
	return c.Dispatch(form.RemoveMetadata{ID: id})
}

// LoadTemplate overwrites the record with the built-in template. It bypasses
// validation.
func (c *Controller) LoadTemplate() Snapshot {
	c.logger.Info("loading form template")
	return c.Dispatch(form.SetAll{Data: form.Template()})
}

// Reset discards the record.
func (c *Controller) Reset() Snapshot {
	return c.Dispatch(form.SetAll{Data: form.Empty()})
}

// Catalog returns the catalog backing metadata additions.
func (c *Controller) Catalog() *catalog.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Data returns a copy of the current record.
func (c *Controller) Data() form.FormData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data.Clone()
}

// Validity returns the memoised predicates for the current record.
func (c *Controller) Validity() form.Validity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validity
}

// Phase returns the submission phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Subscribe registers a change listener and returns a function removing it.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.subscribeLocked(fn)
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// Submit runs the submission protocol. Invalid forms and concurrent
// submissions are rejected without touching state. On success the completion
// callback runs, the record resets to empty and the success phase clears
// after the configured delay. Cancelling ctx while the backend is pending
// restores the idle phase and keeps the record.
func (c *Controller) Submit(ctx context.Context) (submit.Receipt, error) {
	if ctx == nil {
		return submit.Receipt{}, errors.New("session: context is required")
	}

	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return submit.Receipt{}, ErrClosed
	case c.phase == PhaseSubmitting:
		c.mu.Unlock()
		return submit.Receipt{}, ErrSubmitInProgress
	case !c.validity.IsFormValid():
		c.mu.Unlock()
		return submit.Receipt{}, ErrFormInvalid
	}
	c.stopResetTimerLocked()
	c.phase = PhaseSubmitting
	data := c.data.Clone()
	submitter := c.submitter
	snap := c.snapshotLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	c.logger.Info("submitting task", zap.String("report_name", data.ReportName))
	notify(listeners, snap)

	receipt, err := submitter.Submit(ctx, data)
	if err != nil {
		c.mu.Lock()
		c.phase = PhaseIdle
		snap = c.snapshotLocked()
		listeners = c.listenersLocked()
		c.mu.Unlock()

		c.logger.Warn("submission aborted", zap.Error(err))
		notify(listeners, snap)
		return submit.Receipt{}, fmt.Errorf("session: submit: %w", err)
	}

	c.mu.Lock()
	c.phase = PhaseSuccess
	c.receipt = &receipt
	snap = c.snapshotLocked()
	listeners = c.listenersLocked()
	onSuccess := c.onSuccess
	c.mu.Unlock()

	c.logger.Info("task submitted", zap.String("task_id", receipt.TaskID))
	notify(listeners, snap)
	if onSuccess != nil {
		onSuccess(receipt)
	}

	c.mu.Lock()
	c.applyLocked(form.SetAll{Data: form.Empty()})
	c.scheduleClearLocked()
	snap = c.snapshotLocked()
	listeners = c.listenersLocked()
	c.mu.Unlock()

	notify(listeners, snap)
	return receipt, nil
}

// Close stops the pending success timer. Further submissions fail with
// ErrClosed; dispatching actions keeps working.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopResetTimerLocked()
	return nil
}

func (c *Controller) applyLocked(action form.Action) {
	if action == nil {
		return
	}
	c.data = form.Reduce(c.data, action)
	c.validity = form.Validate(c.data)
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Data:     c.data.Clone(),
		Validity: c.validity,
		Phase:    c.phase,
	}
	if c.receipt != nil {
		r := *c.receipt
		snap.LastReceipt = &r
	}
	return snap
}

func (c *Controller) subscribeLocked(fn func(Snapshot)) int {
	if c.listeners == nil {
		c.listeners = make(map[int]func(Snapshot))
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return id
}

func (c *Controller) listenersLocked() []func(Snapshot) {
	if len(c.listeners) == 0 {
		return nil
	}
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		out = append(out, c.listeners[id])
	}
	return out
}

func (c *Controller) scheduleClearLocked() {
	if c.closed {
		return
	}
	c.resetGen++
	gen := c.resetGen
	c.resetTimer = time.AfterFunc(c.successReset, func() {
		c.clearSuccess(gen)
	})
}

func (c *Controller) stopResetTimerLocked() {
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
	c.resetGen++
}

func (c *Controller) clearSuccess(gen uint64) {
	c.mu.Lock()
	if gen != c.resetGen || c.phase != PhaseSuccess {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseIdle
	c.resetTimer = nil
	snap := c.snapshotLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	notify(listeners, snap)
}

func notify(listeners []func(Snapshot), snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}
