package preview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-taskform/pkg/form"
	"github.com/goliatone/go-taskform/pkg/render"
	"github.com/goliatone/go-taskform/pkg/session"
	"github.com/goliatone/go-taskform/pkg/submit"
)

// JSONRenderer emits the machine readable snapshot: data, validity, word
// counts, messages and phase.
type JSONRenderer struct {
	indent string
}

var _ render.Renderer = (*JSONRenderer)(nil)

// NewJSON returns a JSON renderer with two-space indentation.
func NewJSON() *JSONRenderer {
	return &JSONRenderer{indent: "  "}
}

type jsonPayload struct {
	Data        form.FormData         `json:"data"`
	Validity    form.Validity         `json:"validity"`
	IsFormValid bool                  `json:"isFormValid"`
	Messages    map[form.Field]string `json:"messages,omitempty"`
	Labels      map[string]string     `json:"labels,omitempty"`
	Phase       session.Phase         `json:"phase"`
	CanSubmit   bool                  `json:"canSubmit"`
	Receipt     *submit.Receipt       `json:"receipt,omitempty"`
	Errors      *render.ErrorMapping  `json:"errors,omitempty"`
}

func (r *JSONRenderer) Name() string {
	return NameJSON
}

func (r *JSONRenderer) ContentType() string {
	return "application/json"
}

func (r *JSONRenderer) Render(ctx context.Context, snap session.Snapshot, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload := jsonPayload{
		Data:        snap.Data,
		Validity:    snap.Validity,
		IsFormValid: snap.Validity.IsFormValid(),
		Messages:    snap.Validity.Messages(),
		Phase:       snap.Phase,
		CanSubmit:   snap.CanSubmit(),
		Receipt:     snap.LastReceipt,
	}
	if !options.Errors.Empty() {
		mapped := options.Errors
		payload.Errors = &mapped
	}
	if len(snap.Data.Metadata) > 0 {
		cat := options.CatalogOrDefault()
		payload.Labels = make(map[string]string, len(snap.Data.Metadata))
		for _, entry := range snap.Data.Metadata {
			payload.Labels[entry.ID] = cat.Label(entry.Category, entry.Key)
		}
	}

	out, err := json.MarshalIndent(payload, "", r.indent)
	if err != nil {
		return nil, fmt.Errorf("preview json: marshal: %w", err)
	}
	return append(out, '\n'), nil
}
