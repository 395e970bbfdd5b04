// Package schemas validates JSON documents against the schemas embedded in the
// top-level schemas directory.
package schemas

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	embedded "github.com/alfandoo/Attrition-Predict/schemas"
)

// FieldError is one schema violation. Field is a dotted path, "(root)" for the document.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	prefix := "schema validation"
	if e.Schema != "" {
		prefix = "schema " + e.Schema
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

// SchemaLoadError means the schema itself could not be used.
type SchemaLoadError struct {
	Name   string
	Reason string
	Cause  error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("load schema %s: %s: %v", e.Name, e.Reason, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error { return e.Cause }

// compiled maps a schema name to a sync.OnceValues loader.
var compiled sync.Map

func load(name string) (*gojsonschema.Schema, error) {
	fn, _ := compiled.LoadOrStore(name, sync.OnceValues(func() (*gojsonschema.Schema, error) {
		raw, err := embedded.FS.ReadFile(name)
		if err != nil {
			return nil, &SchemaLoadError{Name: name, Reason: "schema not found", Cause: err}
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, &SchemaLoadError{Name: name, Reason: "invalid schema", Cause: err}
		}
		return s, nil
	}))
	return fn.(func() (*gojsonschema.Schema, error))()
}

// Validate checks document against the embedded schema called name.
func Validate(name string, document []byte) error {
	schema, err := load(name)
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("decode document for %s: %w", name, err)
	}
	return collect(name, result)
}

// ValidateFile checks the JSON file at path.
func ValidateFile(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return Validate(name, data)
}

func collect(name string, result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}
	ve := &ValidationError{Schema: name}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
