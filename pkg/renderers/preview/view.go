package preview

import (
	"time"

	"github.com/goliatone/go-taskform/pkg/form"
	"github.com/goliatone/go-taskform/pkg/render"
	"github.com/goliatone/go-taskform/pkg/session"
	"github.com/goliatone/go-taskform/pkg/submit"
	"github.com/goliatone/go-taskform/pkg/theme"
)

const (
	defaultTitle = "Create New Task"
	dateLayout   = "2006-01-02"
	emptyDisplay = "(empty)"
)

type fieldView struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Display  string   `json:"display"`
	Valid    bool     `json:"valid"`
	Message  string   `json:"message,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Words    int      `json:"words"`
	MinWords int      `json:"minWords,omitempty"`
}

type metadataView struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	Icon       string `json:"icon,omitempty"`
	ValueValid bool   `json:"valueValid"`
}

type markersView struct {
	Valid   string `json:"valid"`
	Invalid string `json:"invalid"`
}

type pageView struct {
	Title    string         `json:"title"`
	Variant  string         `json:"variant"`
	Style    string         `json:"style,omitempty"`
	Markers  markersView    `json:"markers"`
	Fields   []fieldView    `json:"fields"`
	Metadata []metadataView `json:"metadata"`
	// MetadataErrors and FormErrors come from RenderOptions.Errors.
	MetadataErrors []string        `json:"metadataErrors,omitempty"`
	FormErrors     []string        `json:"formErrors,omitempty"`
	Phase          string          `json:"phase"`
	CanSubmit      bool            `json:"canSubmit"`
	Receipt        *submit.Receipt `json:"receipt,omitempty"`
}

func buildView(snap session.Snapshot, options render.RenderOptions) pageView {
	data := snap.Data
	validity := snap.Validity
	messages := validity.Messages()

	view := pageView{
		Title:   options.Title,
		Variant: theme.VariantLight,
		Markers: markersView{
			Valid:   options.Theme.Token("marker.valid", "[ok]"),
			Invalid: options.Theme.Token("marker.invalid", "[!!]"),
		},
		Phase:     string(snap.Phase),
		CanSubmit: snap.CanSubmit(),
		Receipt:   snap.LastReceipt,
	}
	if view.Title == "" {
		view.Title = defaultTitle
	}
	if options.Theme != nil {
		view.Style = options.Theme.CSSVarsStyle()
		if options.Theme.Variant != "" {
			view.Variant = options.Theme.Variant
		}
	}

	view.Fields = []fieldView{
		{
			Name:    string(form.FieldReportName),
			Label:   "Report Name",
			Display: displayText(data.ReportName),
			Valid:   validity.ReportName,
			Message: messages[form.FieldReportName],
		},
		{
			Name:     string(form.FieldGoal),
			Label:    "Goal",
			Display:  displayText(data.Goal),
			Valid:    validity.Goal,
			Message:  messages[form.FieldGoal],
			Words:    validity.WordCounts.Goal,
			MinWords: form.MinGoalWords,
		},
		{
			Name:    string(form.FieldAnalysisType),
			Label:   "Analysis Type",
			Display: data.AnalysisType.Label(),
			Valid:   validity.AnalysisType,
			Message: messages[form.FieldAnalysisType],
		},
		{
			Name:     string(form.FieldBackground),
			Label:    "Background",
			Display:  displayText(data.Background),
			Valid:    validity.Background,
			Message:  messages[form.FieldBackground],
			Words:    validity.WordCounts.Background,
			MinWords: form.MinBackgroundWords,
		},
		{
			Name:    string(form.FieldTimeRange),
			Label:   "Time Range",
			Display: displayRange(data.TimeRange),
			Valid:   validity.TimeRange,
			Message: messages[form.FieldTimeRange],
		},
	}

	for i := range view.Fields {
		view.Fields[i].Errors = withoutMessage(options.Errors.For(form.Field(view.Fields[i].Name)), view.Fields[i].Message)
	}
	view.MetadataErrors = options.Errors.For(form.FieldMetadata)
	view.FormErrors = options.Errors.Form

	cat := options.CatalogOrDefault()
	view.Metadata = make([]metadataView, 0, len(data.Metadata))
	for _, entry := range data.Metadata {
		item := metadataView{
			ID:         entry.ID,
			Label:      cat.Label(entry.Category, entry.Key),
			Value:      entry.Value,
			ValueValid: validity.Metadata[entry.ID],
		}
		if category, ok := cat.Category(entry.Category); ok {
			item.Icon = category.Icon
		}
		view.Metadata = append(view.Metadata, item)
	}

	return view
}

func withoutMessage(errs []string, message string) []string {
	var out []string
	for _, e := range errs {
		if e != message {
			out = append(out, e)
		}
	}
	return out
}

func displayText(s string) string {
	if s == "" {
		return emptyDisplay
	}
	return s
}

func displayRange(r *form.TimeRange) string {
	if r == nil {
		return "Not selected"
	}
	return formatDate(r.Start) + " to " + formatDate(r.End)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Format(dateLayout)
}
