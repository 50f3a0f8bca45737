package submit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/goliatone/go-taskform/pkg/form"
	"github.com/goliatone/go-taskform/pkg/submit"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSimulated_AlwaysSucceeds(t *testing.T) {
	fixed := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	s := submit.NewSimulated(
		submit.WithDelay(time.Millisecond),
		submit.WithClock(func() time.Time { return fixed }),
		submit.WithIDGenerator(func() string { return "task-1" }),
	)

	data := form.Template()
	receipt, err := s.Submit(context.Background(), data)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.TaskID != "task-1" || !receipt.SubmittedAt.Equal(fixed) {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
	if receipt.Data.ReportName != data.ReportName {
		t.Fatalf("receipt data mismatch")
	}
}

func TestSimulated_GeneratesIDs(t *testing.T) {
	s := submit.NewSimulated(submit.WithDelay(0))
	a, _ := s.Submit(context.Background(), form.Empty())
	b, _ := s.Submit(context.Background(), form.Empty())
	if a.TaskID == "" || a.TaskID == b.TaskID {
		t.Fatalf("expected unique task ids, got %q and %q", a.TaskID, b.TaskID)
	}
}

func TestSimulated_HonoursCancellation(t *testing.T) {
	s := submit.NewSimulated(submit.WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Submit(ctx, form.Empty()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSimulated_NegativeDelay(t *testing.T) {
	s := submit.NewSimulated(submit.WithDelay(-time.Second))
	if s.Delay() != 0 {
		t.Fatalf("expected negative delay clamped to zero, got %s", s.Delay())
	}
}

func TestFunc_Adapter(t *testing.T) {
	called := false
	var sub submit.Submitter = submit.Func(func(_ context.Context, data form.FormData) (submit.Receipt, error) {
		called = true
		return submit.Receipt{TaskID: "x", Data: data}, nil
	})
	if _, err := sub.Submit(context.Background(), form.Empty()); err != nil || !called {
		t.Fatalf("adapter not invoked: called=%v err=%v", called, err)
	}
}
