package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed submissions.json
var raw []byte

// SubmissionRequestSchema names the component schema of the submission body.
const SubmissionRequestSchema = "SubmissionRequest"

var (
	// ErrEmptyDocument reports a document without content.
	ErrEmptyDocument = errors.New("openapi: document payload is empty")
	// ErrUnknownSchema reports a component schema missing from the document.
	ErrUnknownSchema = errors.New("openapi: unknown schema")
)

// Raw returns a copy of the embedded document.
func Raw() []byte {
	return append([]byte(nil), raw...)
}

// Operation summarises one path operation of the document.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Document is a loaded and validated OpenAPI document.
type Document struct {
	spec *openapi3.T
	data []byte
}

// Load parses the embedded document.
func Load(ctx context.Context) (*Document, error) {
	return LoadFromData(ctx, raw)
}

// LoadFromData parses and validates data. External references are not
// followed.
func LoadFromData(ctx context.Context, data []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return &Document{spec: spec, data: append([]byte(nil), data...)}, nil
}

// Raw returns the bytes the document was loaded from.
func (d *Document) Raw() []byte {
	return append([]byte(nil), d.data...)
}

// Title returns the info title.
func (d *Document) Title() string {
	if d.spec.Info == nil {
		return ""
	}
	return d.spec.Info.Title
}

// Operations lists every operation sorted by id. Operations without an
// operationId are keyed "method:path".
func (d *Document) Operations() []Operation {
	var ops []Operation
	if d.spec.Paths == nil {
		return ops
	}
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			id := operation.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			ops = append(ops, Operation{ID: id, Method: method, Path: path, Summary: operation.Summary})
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].ID < ops[j].ID })
	return ops
}

// ValidateValue checks a decoded JSON value against the named component
// schema.
func (d *Document) ValidateValue(schema string, value any) error {
	if d.spec.Components == nil {
		return fmt.Errorf("%w: %q", ErrUnknownSchema, schema)
	}
	ref, ok := d.spec.Components.Schemas[schema]
	if !ok || ref == nil || ref.Value == nil {
		return fmt.Errorf("%w: %q", ErrUnknownSchema, schema)
	}
	if err := ref.Value.VisitJSON(value); err != nil {
		return fmt.Errorf("openapi: %s: %w", schema, err)
	}
	return nil
}
