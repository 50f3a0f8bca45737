package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/goliatone/go-taskform/pkg/catalog"
	"github.com/goliatone/go-taskform/pkg/form"
	"github.com/goliatone/go-taskform/pkg/session"
	"github.com/goliatone/go-taskform/pkg/submit"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newController(t *testing.T, options ...session.Option) *session.Controller {
	t.Helper()
	base := []session.Option{
		session.WithSubmitter(submit.NewSimulated(submit.WithDelay(time.Millisecond))),
		session.WithSuccessReset(time.Hour),
	}
	c := session.New(append(base, options...)...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func fillValid(c *session.Controller) session.Snapshot {
	t0 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	c.SetField(form.FieldReportName, "Test Report")
	c.SetField(form.FieldGoal, "Understand the phishing wave this month")
	c.Dispatch(form.SetAnalysisType{Type: form.AnalysisSituational})
	c.SetField(form.FieldBackground, "Finance staff received lure emails impersonating the payroll provider for weeks")
	return c.SetTimeRange(t0, t0.Add(24*time.Hour))
}

func TestController_EndToEndSubmission(t *testing.T) {
	var receipts []submit.Receipt
	c := newController(t, session.OnSuccess(func(r submit.Receipt) {
		receipts = append(receipts, r)
	}))

	if c.Validity().IsFormValid() {
		t.Fatalf("empty form should be invalid")
	}

	snap := fillValid(c)
	if !snap.Validity.IsFormValid() {
		t.Fatalf("expected valid form, messages: %v", snap.Validity.Messages())
	}
	if !snap.CanSubmit() {
		t.Fatalf("expected submit control enabled")
	}

	receipt, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Data.ReportName != "Test Report" {
		t.Fatalf("receipt missing submitted data: %+v", receipt.Data)
	}
	if len(receipts) != 1 || receipts[0].TaskID != receipt.TaskID {
		t.Fatalf("completion callback not invoked once: %+v", receipts)
	}

	if diff := cmp.Diff(form.Empty(), c.Data()); diff != "" {
		t.Fatalf("form not reset (-want +got):\n%s", diff)
	}
	if c.Validity().IsFormValid() {
		t.Fatalf("reset form should be invalid")
	}
	if c.Phase() != session.PhaseSuccess {
		t.Fatalf("expected success phase, got %s", c.Phase())
	}
	if got := c.Snapshot().LastReceipt; got == nil || got.TaskID != receipt.TaskID {
		t.Fatalf("last receipt not recorded: %+v", got)
	}
}

func TestController_SubmitInvalidIsNoop(t *testing.T) {
	called := false
	c := newController(t, session.OnSuccess(func(submit.Receipt) { called = true }))
	c.SetField(form.FieldReportName, "Partial")
	before := c.Data()

	if _, err := c.Submit(context.Background()); !errors.Is(err, session.ErrFormInvalid) {
		t.Fatalf("expected ErrFormInvalid, got %v", err)
	}
	if called {
		t.Fatalf("callback must not run for invalid form")
	}
	if diff := cmp.Diff(before, c.Data()); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
	if c.Phase() != session.PhaseIdle {
		t.Fatalf("expected idle phase, got %s", c.Phase())
	}
}

func TestController_RejectsConcurrentSubmission(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	blocking := submit.Func(func(ctx context.Context, data form.FormData) (submit.Receipt, error) {
		close(started)
		<-release
		return submit.Receipt{TaskID: "slow", Data: data}, nil
	})
	c := newController(t, session.WithSubmitter(blocking))
	fillValid(c)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = c.Submit(context.Background())
	}()

	<-started
	if c.Phase() != session.PhaseSubmitting {
		t.Fatalf("expected submitting phase, got %s", c.Phase())
	}
	if c.Snapshot().CanSubmit() {
		t.Fatalf("submit control should be disabled while submitting")
	}
	if _, err := c.Submit(context.Background()); !errors.Is(err, session.ErrSubmitInProgress) {
		t.Fatalf("expected ErrSubmitInProgress, got %v", err)
	}

	close(release)
	wg.Wait()
	if firstErr != nil {
		t.Fatalf("first submit: %v", firstErr)
	}
}

func TestController_SuccessPhaseClearsAfterDelay(t *testing.T) {
	idle := make(chan struct{}, 1)
	c := newController(t, session.WithSuccessReset(5*time.Millisecond))
	fillValid(c)

	sawSuccess := false
	unsubscribe := c.Subscribe(func(s session.Snapshot) {
		if s.Phase == session.PhaseSuccess {
			sawSuccess = true
		}
		if sawSuccess && s.Phase == session.PhaseIdle {
			select {
			case idle <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	select {
	case <-idle:
	case <-time.After(2 * time.Second):
		t.Fatalf("success phase never cleared")
	}
	if c.Phase() != session.PhaseIdle {
		t.Fatalf("expected idle phase, got %s", c.Phase())
	}
}

func TestController_CancelledSubmissionKeepsData(t *testing.T) {
	c := newController(t, session.WithSubmitter(submit.NewSimulated(submit.WithDelay(time.Hour))))
	fillValid(c)
	before := c.Data()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Submit(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if diff := cmp.Diff(before, c.Data()); diff != "" {
		t.Fatalf("data changed (-want +got):\n%s", diff)
	}
	if c.Phase() != session.PhaseIdle {
		t.Fatalf("expected idle phase, got %s", c.Phase())
	}
}

func TestController_ClosedRejectsSubmit(t *testing.T) {
	c := newController(t)
	fillValid(c)
	_ = c.Close()

	if _, err := c.Submit(context.Background()); !errors.Is(err, session.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestController_LoadTemplate(t *testing.T) {
	c := newController(t)
	c.SetField(form.FieldReportName, "will be overwritten")

	snap := c.LoadTemplate()
	if diff := cmp.Diff(form.Template(), snap.Data); diff != "" {
		t.Fatalf("template mismatch (-want +got):\n%s", diff)
	}
	if !snap.Validity.IsFormValid() {
		t.Fatalf("template should be valid: %v", snap.Validity.Messages())
	}
}

func TestController_AddMetadataUsesCatalog(t *testing.T) {
	c := newController(t, session.WithCatalog(catalog.Default()))

	entry, err := c.AddMetadata("geography", "region")
	if err != nil {
		t.Fatalf("add metadata: %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("expected generated id")
	}
	if _, err := c.AddMetadata("geography", "galaxy"); !errors.Is(err, catalog.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}

	c.UpdateMetadata(entry.ID, "Europe")
	got, ok := c.Data().MetadataByID(entry.ID)
	if !ok || got.Value != "Europe" {
		t.Fatalf("update not applied: %+v", got)
	}
	if !c.Validity().Metadata[entry.ID] {
		t.Fatalf("expected metadata value to pass the free-text rule")
	}

	c.RemoveMetadata(entry.ID)
	c.RemoveMetadata(entry.ID)
	if n := len(c.Data().Metadata); n != 0 {
		t.Fatalf("expected empty metadata, got %d", n)
	}
}

func TestController_ListenersAndUnsubscribe(t *testing.T) {
	var seen []string
	c := newController(t, session.OnChange(func(s session.Snapshot) {
		seen = append(seen, s.Data.ReportName)
	}))

	extra := 0
	unsubscribe := c.Subscribe(func(session.Snapshot) { extra++ })

	c.SetField(form.FieldReportName, "one")
	unsubscribe()
	unsubscribe()
	c.SetField(form.FieldReportName, "two")

	if diff := cmp.Diff([]string{"one", "two"}, seen); diff != "" {
		t.Fatalf("listener calls mismatch (-want +got):\n%s", diff)
	}
	if extra != 1 {
		t.Fatalf("expected unsubscribed listener to run once, got %d", extra)
	}
}

func TestController_WithInitial(t *testing.T) {
	c := newController(t, session.WithInitial(form.Template()))
	if !c.Validity().IsFormValid() {
		t.Fatalf("validity not computed for initial data")
	}
	c.Reset()
	if diff := cmp.Diff(form.Empty(), c.Data()); diff != "" {
		t.Fatalf("reset mismatch (-want +got):\n%s", diff)
	}
}
