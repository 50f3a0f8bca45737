package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/pkg/catalog"
	"github.com/goliatone/go-taskform/pkg/contract"
	"github.com/goliatone/go-taskform/pkg/form"
	"github.com/goliatone/go-taskform/pkg/render"
	"github.com/goliatone/go-taskform/pkg/renderers/preview"
	"github.com/goliatone/go-taskform/pkg/renderers/tui"
	"github.com/goliatone/go-taskform/pkg/session"
	"github.com/goliatone/go-taskform/pkg/submit"
	"github.com/goliatone/go-taskform/pkg/theme"
)

func (a *app) newController(cat *catalog.Catalog, extra ...session.Option) *session.Controller {
	opts := append(a.cfg.SessionOptions(a.logger), session.WithCatalog(cat))
	return session.New(append(opts, extra...)...)
}

func newNewCmd(a *app) *cobra.Command {
	var useTemplate bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a task interactively",
		Long: `Prompts for every form field, optional metadata and a final confirmation,
then submits the task through the simulated backend.

Invalid answers are explained and asked again. The end of the time range may
not precede its start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.cfg.LoadCatalog()
			if err != nil {
				return err
			}
			ctrl := a.newController(cat, session.OnSuccess(func(r submit.Receipt) {
				a.logger.Info("task created",
					zap.String("task_id", r.TaskID),
					zap.String("report_name", r.Data.ReportName),
				)
			}))
			defer ctrl.Close()

			flow := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				tui.WithTemplatePrompt(useTemplate),
				tui.WithLogger(a.logger.Named("tui")),
			)
			_, err = flow.Run(cmd.Context(), ctrl)
			if errors.Is(err, tui.ErrNotSubmitted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Task not submitted.")
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&useTemplate, "template", false, "offer the example template before prompting")
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		rendererName string
		file         string
		useTemplate  bool
		themeName    string
		variant      string
		title        string
		checkPayload bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a record as text, HTML or JSON",
		Long: `Loads a record (empty, the built-in template, or a JSON/YAML file) into a
form session and renders it with validity markers, word counts and catalog
labels.

Renderers: text (default), html, json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.cfg.LoadCatalog()
			if err != nil {
				return err
			}
			ctrl := a.newController(cat)
			defer ctrl.Close()

			switch {
			case file != "":
				data, err := readFormData(file)
				if err != nil {
					return err
				}
				ctrl.Dispatch(form.SetAll{Data: data})
			case useTemplate:
				ctrl.LoadTemplate()
			}

			if themeName == "" {
				themeName = a.cfg.Theme.Name
			}
			if variant == "" {
				variant = a.cfg.Theme.Variant
			}
			themeCfg, err := theme.Default().Resolve(themeName, variant)
			if err != nil {
				return err
			}

			snap := ctrl.Snapshot()
			options := render.RenderOptions{
				Theme:   themeCfg,
				Catalog: cat,
				Title:   title,
			}
			if checkPayload {
				violations, err := contract.NewValidator(contract.WithCatalog(cat)).Violations(cmd.Context(), snap.Data)
				if err != nil {
					return err
				}
				options.Errors = render.MapErrorPayload(violations)
			}

			registry, err := preview.NewRegistry()
			if err != nil {
				return err
			}
			out, contentType, err := registry.Render(cmd.Context(), rendererName, snap, options)
			if err != nil {
				return err
			}
			a.logger.Debug("preview rendered",
				zap.String("renderer", rendererName),
				zap.String("content_type", contentType),
				zap.Int("bytes", len(out)),
			)
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&rendererName, "renderer", "r", preview.NameText, "renderer to use (text, html, json)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON or YAML record to load")
	cmd.Flags().BoolVar(&useTemplate, "template", false, "load the built-in template record")
	cmd.Flags().StringVar(&themeName, "theme", "", "theme name (defaults to configuration)")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant: light or dark (defaults to configuration)")
	cmd.Flags().StringVar(&title, "title", "", "heading shown above the form")
	cmd.Flags().BoolVar(&checkPayload, "contract", false, "annotate fields with task creation contract violations")
	return cmd
}

func newTemplateCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print the built-in template record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeEncoded(cmd.OutOrStdout(), form.Template(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format (json, yaml)")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a JSON or YAML record",
		Long: `Runs the field predicates (with word counts) and the task creation contract
against a record file. Exits non-zero when the record would not be accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := readFormData(path)
			if err != nil {
				return err
			}
			cat, err := a.cfg.LoadCatalog()
			if err != nil {
				return err
			}

			writeValidity(cmd.OutOrStdout(), form.Validate(data))

			validator := contract.NewValidator(contract.WithCatalog(cat))
			violations, err := validator.Violations(cmd.Context(), data)
			if err != nil {
				return err
			}
			writeViolations(cmd.OutOrStdout(), render.MapErrorPayload(violations))

			if err := validator.Validate(cmd.Context(), data); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK: record is ready to submit")
			return nil
		},
	}
	return cmd
}

func writeValidity(w io.Writer, v form.Validity) {
	messages := v.Messages()
	rows := []struct {
		field form.Field
		valid bool
		extra string
	}{
		{field: form.FieldReportName, valid: v.ReportName},
		{field: form.FieldGoal, valid: v.Goal, extra: fmt.Sprintf(" (%d/%d words)", v.WordCounts.Goal, form.MinGoalWords)},
		{field: form.FieldAnalysisType, valid: v.AnalysisType},
		{field: form.FieldBackground, valid: v.Background, extra: fmt.Sprintf(" (%d/%d words)", v.WordCounts.Background, form.MinBackgroundWords)},
		{field: form.FieldTimeRange, valid: v.TimeRange},
	}
	for _, row := range rows {
		marker := "ok"
		if !row.valid {
			marker = "!!"
		}
		line := fmt.Sprintf("[%s] %-12s%s", marker, row.field, row.extra)
		if msg := messages[row.field]; msg != "" {
			line += "  " + msg
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	if v.TimeRange && !v.TimeRangeOrdered {
		fmt.Fprintln(w, "warning: time range ends before it starts")
	}
}

// writeViolations lists contract problems that the field rows above do not
// already explain.
func writeViolations(w io.Writer, mapping render.ErrorMapping) {
	for _, field := range mapping.FieldNames() {
		for _, msg := range mapping.Fields[field] {
			if isFieldMessage(form.Field(field), msg) {
				continue
			}
			fmt.Fprintf(w, "contract: %s: %s\n", field, msg)
		}
	}
	for _, msg := range mapping.Form {
		fmt.Fprintf(w, "contract: %s\n", msg)
	}
}

func isFieldMessage(field form.Field, msg string) bool {
	return form.Validate(form.Empty()).Messages()[field] == msg
}

func newSchemaCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI document for task creation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := contract.Encode(contract.Document(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format (json, yaml)")
	return cmd
}

func newCatalogCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List metadata categories and options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.cfg.LoadCatalog()
			if err != nil {
				return err
			}
			if format == formatText {
				writeCatalog(cmd.OutOrStdout(), cat)
				return nil
			}
			return writeEncoded(cmd.OutOrStdout(), cat.Categories(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text, json, yaml)")
	return cmd
}

func writeCatalog(w io.Writer, cat *catalog.Catalog) {
	for _, category := range cat.Categories() {
		fmt.Fprintf(w, "%s (%s)\n", category.Name, category.Key)
		for _, option := range category.Options {
			line := fmt.Sprintf("  %-18s %-22s [%s]", option.Key, option.Label, option.InputType)
			if len(option.Choices) > 0 {
				line += " " + strings.Join(option.Choices, ", ")
			}
			fmt.Fprintln(w, line)
		}
	}
}
