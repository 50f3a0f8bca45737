package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taskform/pkg/render"
	"github.com/goliatone/go-taskform/pkg/session"
)

type stubRenderer struct {
	name string
	err  error
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/" + s.name }
func (s stubRenderer) Render(_ context.Context, snap session.Snapshot, _ render.RenderOptions) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.name + ":" + string(snap.Phase)), nil
}

func TestRegistry_DefaultAndLookup(t *testing.T) {
	reg, err := render.NewRegistry(stubRenderer{name: "text"}, stubRenderer{name: "html"})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	out, contentType, err := reg.Render(context.Background(), "", session.Snapshot{Phase: session.PhaseIdle}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "text:idle" || contentType != "text/text" {
		t.Fatalf("expected first renderer as default, got %q (%s)", out, contentType)
	}

	if err := reg.SetDefault("html"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	r, err := reg.Get(" ")
	if err != nil || r.Name() != "html" {
		t.Fatalf("expected html default, got %v (%v)", r, err)
	}

	if diff := cmp.Diff([]string{"html", "text"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Errors(t *testing.T) {
	if _, err := render.NewRegistry(stubRenderer{name: "a"}, stubRenderer{name: "a"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if _, err := render.NewRegistry(stubRenderer{name: ""}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if _, err := render.NewRegistry(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}

	reg, _ := render.NewRegistry()
	if _, err := reg.Get("missing"); err == nil {
		t.Fatalf("expected not found error")
	}
	if err := reg.SetDefault("missing"); err == nil {
		t.Fatalf("expected not found error")
	}

	boom := errors.New("boom")
	reg, _ = render.NewRegistry(stubRenderer{name: "bad", err: boom})
	if _, _, err := reg.Render(context.Background(), "bad", session.Snapshot{}, render.RenderOptions{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped renderer error, got %v", err)
	}
}
