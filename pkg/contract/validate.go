package contract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-taskform/pkg/catalog"
	"github.com/goliatone/go-taskform/pkg/form"
)

var (
	// ErrSchema wraps payload shape violations reported by the schema.
	ErrSchema = errors.New("contract: payload does not match schema")
	// ErrRequirements is returned when a field predicate fails.
	ErrRequirements = errors.New("contract: payload fails field requirements")
	// ErrInvertedRange is returned when the time range ends before it starts.
	ErrInvertedRange = errors.New("contract: time range ends before it starts")
	// ErrUnknownFormat is returned by Encode for unsupported formats.
	ErrUnknownFormat = errors.New("contract: unknown format")
)

// Option configures a Validator.
type Option func(*Validator)

// WithCatalog checks metadata entries against cat. Without it metadata is
// only checked for shape.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(v *Validator) {
		v.catalog = cat
	}
}

// Validator checks FormData records against the task request schema.
type Validator struct {
	schema  *openapi3.Schema
	catalog *catalog.Catalog
}

// NewValidator returns a validator for the task request schema.
func NewValidator(options ...Option) *Validator {
	v := &Validator{schema: TaskRequestSchema()}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate returns nil when data would be accepted by the creation endpoint.
// Failures wrap ErrSchema, ErrRequirements, ErrInvertedRange or the catalog
// lookup errors.
func (v *Validator) Validate(ctx context.Context, data form.FormData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := toJSONValue(data)
	if err != nil {
		return fmt.Errorf("contract: encode payload: %w", err)
	}
	if err := v.schema.VisitJSON(payload, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}

	validity := form.Validate(data)
	if !validity.IsFormValid() {
		return fmt.Errorf("%w: %s", ErrRequirements, joinMessages(validity.Messages()))
	}
	if !validity.TimeRangeOrdered {
		return ErrInvertedRange
	}

	if v.catalog != nil {
		if err := v.catalog.Check(data); err != nil {
			return fmt.Errorf("contract: metadata: %w", err)
		}
	}
	return nil
}

// Violations collects every problem Validate would report, keyed by JSON
// pointer into the payload. Record-level problems use the empty key. A nil
// map means the record is acceptable.
func (v *Validator) Violations(ctx context.Context, data form.FormData) (map[string][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := toJSONValue(data)
	if err != nil {
		return nil, fmt.Errorf("contract: encode payload: %w", err)
	}

	out := make(map[string][]string)
	add := func(path, message string) {
		out[path] = append(out[path], message)
	}

	if err := v.schema.VisitJSON(payload, openapi3.MultiErrors()); err != nil {
		collectSchemaErrors(err, add)
	}

	validity := form.Validate(data)
	for field, message := range validity.Messages() {
		add("/"+string(field), message)
	}
	if validity.TimeRange && !validity.TimeRangeOrdered {
		add("/"+string(form.FieldTimeRange), "End date must not be before the start date")
	}

	if v.catalog != nil {
		for i, entry := range data.Metadata {
			if _, err := v.catalog.Option(entry.Category, entry.Key); err != nil {
				add(fmt.Sprintf("/%s/%d", form.FieldMetadata, i), err.Error())
			}
		}
	}

	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func collectSchemaErrors(err error, add func(path, message string)) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			collectSchemaErrors(inner, add)
		}
		return
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		path := "/" + strings.Join(schemaErr.JSONPointer(), "/")
		add(path, schemaErr.Reason)
		return
	}
	add("", err.Error())
}

// toJSONValue converts data to the generic shape kin-openapi validates. An
// unset analysis type is dropped so it reports as missing rather than as an
// enum mismatch.
func toJSONValue(data form.FormData) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if v, ok := out[string(form.FieldAnalysisType)].(string); ok && v == "" {
		delete(out, string(form.FieldAnalysisType))
	}
	for _, field := range []form.Field{form.FieldTimeRange, form.FieldMetadata} {
		if out[string(field)] == nil {
			delete(out, string(field))
		}
	}
	return out, nil
}

func joinMessages(messages map[form.Field]string) string {
	fields := make([]string, 0, len(messages))
	for field := range messages {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+messages[form.Field(field)])
	}
	return strings.Join(parts, "; ")
}
