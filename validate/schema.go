package validate

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/convoy-rl/convoy/schemas"
)

var (
	compiledSchema *gojsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		loader := gojsonschema.NewBytesLoader(schemas.ExperimentV1Schema)
		compiledSchema, compileErr = gojsonschema.NewSchema(loader)
	})
	return compiledSchema, compileErr
}

// Document validates a JSON-encoded experiment document against the v1
// schema. Every violation becomes one ValidationError with the dotted field
// path; all are collected in a single pass. The returned error reports
// schema compilation or evaluation failure, not document problems.
func Document(jsonData []byte) (*Result, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling experiment schema: %w", err)
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("validating experiment document: %w", err)
	}

	r := &Result{}
	for _, e := range res.Errors() {
		r.Errors = append(r.Errors, fromSchemaError(e))
	}
	return r, nil
}

func fromSchemaError(e gojsonschema.ResultError) ValidationError {
	path := e.Field()
	if path == "(root)" {
		path = ""
	}

	ve := ValidationError{
		Kind:       kindForSchemaError(e.Type()),
		Path:       path,
		Value:      e.Value(),
		Constraint: e.Description(),
	}

	switch e.Type() {
	case "required":
		// Point at the missing field itself, not the parent object.
		if prop, ok := e.Details()["property"].(string); ok {
			if ve.Path == "" {
				ve.Path = prop
			} else {
				ve.Path = ve.Path + "." + prop
			}
		}
		ve.Value = nil
	case "additional_property_not_allowed":
		if prop, ok := e.Details()["property"].(string); ok {
			if ve.Path == "" {
				ve.Path = prop
			} else {
				ve.Path = ve.Path + "." + prop
			}
		}
		ve.Value = nil
	}

	return ve
}

func kindForSchemaError(typ string) Kind {
	switch typ {
	case "enum":
		return KindUnknownEnum
	case "number_gt", "number_gte", "number_lt", "number_lte", "multiple_of":
		return KindRange
	default:
		return KindType
	}
}
