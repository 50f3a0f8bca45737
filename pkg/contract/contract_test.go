package contract_test

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-taskform/pkg/catalog"
	"github.com/goliatone/go-taskform/pkg/contract"
	"github.com/goliatone/go-taskform/pkg/form"
	"github.com/goliatone/go-taskform/pkg/testsupport"
)

func TestDocument_IsValidOpenAPI(t *testing.T) {
	doc := contract.Document()
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("document should validate: %v", err)
	}

	item := doc.Paths.Find(contract.TasksPath)
	if item == nil || item.Post == nil {
		t.Fatalf("expected POST %s operation", contract.TasksPath)
	}
	if item.Post.OperationID != contract.CreateTaskOperation {
		t.Fatalf("unexpected operation id %q", item.Post.OperationID)
	}
	if _, ok := doc.Components.Schemas["TaskRequest"]; !ok {
		t.Fatalf("expected TaskRequest component")
	}
}

func TestTaskRequestSchema_AnalysisEnum(t *testing.T) {
	schema := contract.TaskRequestSchema()
	prop := schema.Properties[string(form.FieldAnalysisType)]
	if prop == nil || prop.Value == nil {
		t.Fatalf("analysisType property missing")
	}
	want := []any{"situational", "impact"}
	if diff := testsupport.CompareGolden(want, prop.Value.Enum); diff != "" {
		t.Fatalf("analysis enum mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode(t *testing.T) {
	jsonOut, err := contract.Encode(nil, "json")
	if err != nil {
		t.Fatalf("encode json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(jsonOut, &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded["openapi"] != contract.OpenAPIVersion {
		t.Fatalf("unexpected openapi version %v", decoded["openapi"])
	}

	yamlOut, err := contract.Encode(contract.Document(), "yaml")
	if err != nil {
		t.Fatalf("encode yaml: %v", err)
	}
	var fromYAML map[string]any
	if err := yaml.Unmarshal(yamlOut, &fromYAML); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if fromYAML["openapi"] != contract.OpenAPIVersion {
		t.Fatalf("unexpected yaml openapi version %v", fromYAML["openapi"])
	}
	if !strings.Contains(string(yamlOut), "/tasks") {
		t.Fatalf("yaml output missing tasks path:\n%s", yamlOut)
	}

	if _, err := contract.Encode(nil, "xml"); !errors.Is(err, contract.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestValidator_Validate(t *testing.T) {
	validator := contract.NewValidator(contract.WithCatalog(catalog.Default()))
	ctx := context.Background()

	inverted := form.Template()
	inverted.TimeRange = &form.TimeRange{
		Start: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	noAnalysis := form.Template()
	noAnalysis.AnalysisType = form.AnalysisUnset

	noRange := form.Template()
	noRange.TimeRange = nil

	shortGoal := form.Template()
	shortGoal.Goal = "too short goal"

	shortName := form.Template()
	shortName.ReportName = "Q1"

	unknownMeta := form.Template()
	unknownMeta.Metadata = append(unknownMeta.Metadata, form.MetadataEntry{
		ID: "x", Category: "weather", Key: "rain", Value: "heavy",
	})

	nilMetadata := testsupport.ValidFormData()
	nilMetadata.Metadata = nil

	tests := []struct {
		name string
		data form.FormData
		want error
	}{
		{name: "template", data: form.Template()},
		{name: "valid without metadata", data: nilMetadata},
		{name: "inverted range", data: inverted, want: contract.ErrInvertedRange},
		{name: "missing analysis type", data: noAnalysis, want: contract.ErrSchema},
		{name: "missing time range", data: noRange, want: contract.ErrSchema},
		{name: "short report name", data: shortName, want: contract.ErrSchema},
		{name: "goal below word minimum", data: shortGoal, want: contract.ErrRequirements},
		{name: "unknown metadata category", data: unknownMeta, want: catalog.ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(ctx, tt.data)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected valid payload, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidator_RequirementsMessage(t *testing.T) {
	data := form.Template()
	data.Background = "one two three"

	err := contract.NewValidator().Validate(context.Background(), data)
	if !errors.Is(err, contract.ErrRequirements) {
		t.Fatalf("expected ErrRequirements, got %v", err)
	}
	if !strings.Contains(err.Error(), "background: Please provide more meaningful content") {
		t.Fatalf("expected background message, got %q", err.Error())
	}
}

func TestValidator_Violations(t *testing.T) {
	validator := contract.NewValidator(contract.WithCatalog(catalog.Default()))
	ctx := context.Background()

	got, err := validator.Violations(ctx, form.Template())
	if err != nil {
		t.Fatalf("violations: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no violations for template, got %v", got)
	}

	got, err = validator.Violations(ctx, form.Empty())
	if err != nil {
		t.Fatalf("violations: %v", err)
	}
	for _, field := range []form.Field{
		form.FieldReportName,
		form.FieldGoal,
		form.FieldAnalysisType,
		form.FieldBackground,
		form.FieldTimeRange,
	} {
		if len(got["/"+string(field)]) == 0 {
			t.Fatalf("expected violation for %s, got %v", field, got)
		}
	}
}

func TestValidator_ViolationsPointAtOffendingEntry(t *testing.T) {
	data := form.Template()
	data.TimeRange = &form.TimeRange{
		Start: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	data.Metadata = append(data.Metadata, form.MetadataEntry{
		ID: "x", Category: "weather", Key: "rain", Value: "heavy",
	})
	index := len(data.Metadata) - 1

	got, err := contract.NewValidator(contract.WithCatalog(catalog.Default())).Violations(context.Background(), data)
	if err != nil {
		t.Fatalf("violations: %v", err)
	}

	want := []string{"End date must not be before the start date"}
	if diff := testsupport.CompareGolden(want, got["/timeRange"]); diff != "" {
		t.Fatalf("time range violation mismatch (-want +got):\n%s", diff)
	}
	entry := got["/metadata/"+strconv.Itoa(index)]
	if len(entry) != 1 || !strings.Contains(entry[0], "unknown category") {
		t.Fatalf("expected unknown category violation, got %v", got)
	}
}

func TestValidator_ViolationsHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := contract.NewValidator().Violations(ctx, form.Template()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
