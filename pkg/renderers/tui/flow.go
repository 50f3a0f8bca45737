// Package tui drives a form session from the terminal, one prompt per field,
// dispatching every answer to the session controller as it is given.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/pkg/catalog"
	"github.com/goliatone/go-taskform/pkg/form"
	"github.com/goliatone/go-taskform/pkg/session"
	"github.com/goliatone/go-taskform/pkg/submit"
)

// Flow walks the user through the task creation form.
type Flow struct {
	driver        PromptDriver
	dateLayout    string
	offerTemplate bool
	theme         Theme
	logger        *zap.Logger
}

// New constructs a flow with the survey driver unless one is supplied.
func New(options ...Option) *Flow {
	f := &Flow{
		dateLayout: DefaultDateLayout,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	return f
}

// Run prompts for every field, optional metadata and the final confirmation,
// then submits through ctrl. Fields already valid in the controller are
// offered as defaults.
func (f *Flow) Run(ctx context.Context, ctrl *session.Controller) (submit.Receipt, error) {
	if ctx == nil {
		return submit.Receipt{}, errors.New("tui: context is required")
	}
	if ctrl == nil {
		return submit.Receipt{}, errors.New("tui: controller is required")
	}

	if f.offerTemplate {
		useTemplate, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: "Start from the example template?",
			Help:    "Prefills every field with a sample ransomware analysis task.",
		})
		if err != nil {
			return submit.Receipt{}, err
		}
		if useTemplate {
			ctrl.LoadTemplate()
		}
	}

	steps := []func(context.Context, *session.Controller) error{
		f.promptReportName,
		f.promptGoal,
		f.promptAnalysisType,
		f.promptBackground,
		f.promptTimeRange,
		f.promptMetadata,
	}
	for _, step := range steps {
		if err := step(ctx, ctrl); err != nil {
			return submit.Receipt{}, err
		}
	}

	return f.confirmAndSubmit(ctx, ctrl)
}

func (f *Flow) promptReportName(ctx context.Context, ctrl *session.Controller) error {
	for {
		value, err := f.driver.Input(ctx, InputConfig{
			Message: "Report name",
			Default: ctrl.Data().ReportName,
			Help:    fmt.Sprintf("At least %d characters.", form.MinReportNameLength),
		})
		if err != nil {
			return err
		}
		snap := ctrl.SetField(form.FieldReportName, value)
		if snap.Validity.ReportName {
			return nil
		}
		f.invalid(ctx, snap.Validity.Messages()[form.FieldReportName])
	}
}

func (f *Flow) promptGoal(ctx context.Context, ctrl *session.Controller) error {
	for {
		value, err := f.driver.Input(ctx, InputConfig{
			Message: "Goal",
			Default: ctrl.Data().Goal,
			Help:    fmt.Sprintf("What should the analysis answer? At least %d words.", form.MinGoalWords),
		})
		if err != nil {
			return err
		}
		snap := ctrl.SetField(form.FieldGoal, value)
		if snap.Validity.Goal {
			return nil
		}
		f.invalid(ctx, fmt.Sprintf("%s (%d/%d words)",
			snap.Validity.Messages()[form.FieldGoal], snap.Validity.WordCounts.Goal, form.MinGoalWords))
	}
}

func (f *Flow) promptAnalysisType(ctx context.Context, ctrl *session.Controller) error {
	types := form.AnalysisTypes()
	labels := make([]string, len(types))
	current := 0
	for i, t := range types {
		labels[i] = t.Label()
		if t == ctrl.Data().AnalysisType {
			current = i
		}
	}

	for {
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      "Analysis type",
			Options:      labels,
			DefaultIndex: current,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(types) {
			f.invalid(ctx, "Select an analysis type")
			continue
		}
		ctrl.Dispatch(form.SetAnalysisType{Type: types[idx]})
		return nil
	}
}

func (f *Flow) promptBackground(ctx context.Context, ctrl *session.Controller) error {
	for {
		value, err := f.driver.TextArea(ctx, TextAreaConfig{
			Message: "Background",
			Default: ctrl.Data().Background,
			Help:    fmt.Sprintf("Context that triggered the request. At least %d words.", form.MinBackgroundWords),
		})
		if err != nil {
			return err
		}
		snap := ctrl.SetField(form.FieldBackground, value)
		if snap.Validity.Background {
			return nil
		}
		f.invalid(ctx, fmt.Sprintf("%s (%d/%d words)",
			snap.Validity.Messages()[form.FieldBackground], snap.Validity.WordCounts.Background, form.MinBackgroundWords))
	}
}

// promptTimeRange refuses an end before the start even though the record
// itself would accept it.
func (f *Flow) promptTimeRange(ctx context.Context, ctrl *session.Controller) error {
	var startDefault, endDefault string
	if r := ctrl.Data().TimeRange; r != nil {
		startDefault = r.Start.Format(f.dateLayout)
		endDefault = r.End.Format(f.dateLayout)
	}

	for {
		start, err := f.promptDate(ctx, "Time range start", startDefault)
		if err != nil {
			return err
		}
		end, err := f.promptDate(ctx, "Time range end", endDefault)
		if err != nil {
			return err
		}
		if end.Before(start) {
			f.invalid(ctx, "End date must not be before the start date")
			continue
		}
		ctrl.SetTimeRange(start, end)
		return nil
	}
}

func (f *Flow) promptDate(ctx context.Context, message, def string) (time.Time, error) {
	for {
		raw, err := f.driver.Input(ctx, InputConfig{
			Message: message,
			Default: def,
			Help:    "Format " + f.dateLayout,
		})
		if err != nil {
			return time.Time{}, err
		}
		t, err := time.ParseInLocation(f.dateLayout, strings.TrimSpace(raw), time.UTC)
		if err != nil {
			f.invalid(ctx, fmt.Sprintf("Invalid date %q, expected %s", raw, f.dateLayout))
			continue
		}
		return t, nil
	}
}

func (f *Flow) promptMetadata(ctx context.Context, ctrl *session.Controller) error {
	cat := ctrl.Catalog()
	categories := cat.Categories()
	if len(categories) == 0 {
		return nil
	}

	for {
		more, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add metadata? (%d added)", len(ctrl.Data().Metadata)),
		})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}

		category, err := f.selectCategory(ctx, categories)
		if err != nil {
			return err
		}
		option, err := f.selectOption(ctx, category)
		if err != nil {
			return err
		}
		value, err := f.promptValue(ctx, option)
		if err != nil {
			return err
		}

		entry, err := ctrl.AddMetadata(category.Key, option.Key)
		if err != nil {
			return fmt.Errorf("tui: add metadata: %w", err)
		}
		ctrl.UpdateMetadata(entry.ID, value)
		f.logger.Debug("metadata added",
			zap.String("id", entry.ID),
			zap.String("category", category.Key),
			zap.String("key", option.Key),
		)
	}
}

func (f *Flow) selectCategory(ctx context.Context, categories []catalog.Category) (catalog.Category, error) {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	idx, err := f.driver.Select(ctx, SelectConfig{Message: "Category", Options: names})
	if err != nil {
		return catalog.Category{}, err
	}
	if idx < 0 || idx >= len(categories) {
		return catalog.Category{}, ErrInvalidSelection
	}
	return categories[idx], nil
}

func (f *Flow) selectOption(ctx context.Context, category catalog.Category) (catalog.Option, error) {
	labels := make([]string, len(category.Options))
	for i, o := range category.Options {
		labels[i] = o.Label
	}
	idx, err := f.driver.Select(ctx, SelectConfig{Message: category.Name, Options: labels})
	if err != nil {
		return catalog.Option{}, err
	}
	if idx < 0 || idx >= len(category.Options) {
		return catalog.Option{}, ErrInvalidSelection
	}
	return category.Options[idx], nil
}

func (f *Flow) promptValue(ctx context.Context, option catalog.Option) (string, error) {
	switch option.InputType {
	case catalog.InputEnum:
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message: option.Label,
			Options: option.Choices,
			Help:    option.Description,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(option.Choices) {
			return "", ErrInvalidSelection
		}
		return option.Choices[idx], nil
	case catalog.InputMultiSelect:
		picked, err := f.driver.MultiSelect(ctx, SelectConfig{
			Message: option.Label,
			Options: option.Choices,
			Help:    option.Description,
		})
		if err != nil {
			return "", err
		}
		values := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(option.Choices) {
				values = append(values, option.Choices[idx])
			}
		}
		return strings.Join(values, ", "), nil
	}

	help := option.Description
	if len(option.Examples) > 0 {
		help = strings.TrimSpace(help + " e.g. " + strings.Join(option.Examples, ", "))
	}
	for {
		value, err := f.driver.Input(ctx, InputConfig{Message: option.Label, Help: help})
		if err != nil {
			return "", err
		}
		if form.MetadataValueValid(value) {
			return value, nil
		}
		f.invalid(ctx, fmt.Sprintf("Value must be at least %d characters", form.MinMetadataValueLength))
	}
}

func (f *Flow) confirmAndSubmit(ctx context.Context, ctrl *session.Controller) (submit.Receipt, error) {
	data := ctrl.Data()
	f.info(ctx, fmt.Sprintf("%s | %s | %d metadata entries",
		data.ReportName, data.AnalysisType.Label(), len(data.Metadata)))

	ok, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Create task?", Default: true})
	if err != nil {
		return submit.Receipt{}, err
	}
	if !ok {
		return submit.Receipt{}, ErrNotSubmitted
	}

	f.info(ctx, "Creating task...")
	receipt, err := ctrl.Submit(ctx)
	if err != nil {
		return submit.Receipt{}, err
	}
	f.info(ctx, "Task created: "+receipt.TaskID)
	return receipt, nil
}

func (f *Flow) info(ctx context.Context, msg string) {
	_ = f.driver.Info(ctx, f.theme.InfoPrefix+msg)
}

func (f *Flow) invalid(ctx context.Context, msg string) {
	_ = f.driver.Info(ctx, f.theme.ErrorPrefix+msg)
}
