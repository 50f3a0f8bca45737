package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-taskform/pkg/form"
)

const (
	// OpenAPIVersion is the document version emitted by Document.
	OpenAPIVersion = "3.0.3"
	// TasksPath is the creation endpoint described by the document.
	TasksPath = "/tasks"
	// CreateTaskOperation is the operationId of the creation endpoint.
	CreateTaskOperation = "createTask"

	taskRequestRef = "#/components/schemas/TaskRequest"
	taskReceiptRef = "#/components/schemas/TaskReceipt"
)

// TaskRequestSchema describes a submittable FormData record.
func TaskRequestSchema() *openapi3.Schema {
	timeRange := openapi3.NewObjectSchema().
		WithProperty("start", openapi3.NewDateTimeSchema()).
		WithProperty("end", openapi3.NewDateTimeSchema()).
		WithRequired([]string{"start", "end"})
	timeRange.Description = "Inclusive reporting window."

	entry := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("category", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("key", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("value", openapi3.NewStringSchema()).
		WithRequired([]string{"id", "category", "key", "value"})

	analysis := make([]any, 0, len(form.AnalysisTypes()))
	for _, a := range form.AnalysisTypes() {
		analysis = append(analysis, string(a))
	}

	schema := openapi3.NewObjectSchema().
		WithProperty(string(form.FieldReportName), openapi3.NewStringSchema().WithMinLength(form.MinReportNameLength)).
		WithProperty(string(form.FieldGoal), openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty(string(form.FieldAnalysisType), openapi3.NewStringSchema().WithEnum(analysis...)).
		WithProperty(string(form.FieldBackground), openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty(string(form.FieldTimeRange), timeRange).
		WithProperty(string(form.FieldMetadata), openapi3.NewArraySchema().WithItems(entry)).
		WithRequired([]string{
			string(form.FieldReportName),
			string(form.FieldGoal),
			string(form.FieldAnalysisType),
			string(form.FieldBackground),
			string(form.FieldTimeRange),
		})
	schema.Description = "Task creation payload for the report center."
	return schema
}

// TaskReceiptSchema describes the response of a successful submission.
func TaskReceiptSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("taskId", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("submittedAt", openapi3.NewDateTimeSchema()).
		WithPropertyRef("data", openapi3.NewSchemaRef(taskRequestRef, TaskRequestSchema())).
		WithRequired([]string{"taskId", "submittedAt", "data"})
}

// Document builds the OpenAPI document for the task creation endpoint.
func Document() *openapi3.T {
	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{
		"TaskRequest": openapi3.NewSchemaRef("", TaskRequestSchema()),
		"TaskReceipt": openapi3.NewSchemaRef("", TaskReceiptSchema()),
	}

	op := openapi3.NewOperation()
	op.OperationID = CreateTaskOperation
	op.Summary = "Create an analysis task"
	op.Tags = []string{"tasks"}
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchemaRef(openapi3.NewSchemaRef(taskRequestRef, TaskRequestSchema())),
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(201, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Task created").
				WithJSONSchemaRef(openapi3.NewSchemaRef(taskReceiptRef, TaskReceiptSchema())),
		}),
	)

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       "Report Center Tasks",
			Version:     "1.0.0",
			Description: "Creation of situational and impact analysis tasks.",
		},
		Paths:      openapi3.NewPaths(),
		Components: &components,
	}
	doc.AddOperation(TasksPath, "POST", op)
	return doc
}

// Encode serialises the document as "json" (default) or "yaml".
func Encode(doc *openapi3.T, format string) ([]byte, error) {
	if doc == nil {
		doc = Document()
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("contract: encode json: %w", err)
		}
		return append(out, '\n'), nil
	case "yaml", "yml":
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("contract: encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
