// Package schema validates finished claim records against the canonical
// record schema.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/claimpipe/claimpipe/internal/claim"
)

//go:embed schemas/record.json
var schemaFS embed.FS

// Validator reports whether a record conforms to the canonical schema.
type Validator interface {
	Validate(rec claim.Record) (bool, string)
}

// RecordValidator validates against the embedded record schema.
type RecordValidator struct {
	schema *jsonschema.Schema
}

// NewRecordValidator compiles the embedded schema.
func NewRecordValidator() (*RecordValidator, error) {
	raw, err := schemaFS.ReadFile("schemas/record.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded record schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("record.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to load record schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile record schema: %w", err)
	}

	return &RecordValidator{schema: schema}, nil
}

// Validate reports conformance along with a human-readable reason on
// failure. The reason is empty for a valid record.
func (v *RecordValidator) Validate(rec claim.Record) (bool, string) {
	// Round-trip through JSON so map and slice types match what a consumer
	// of the serialized record would see.
	data, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Sprintf("record not serializable: %v", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, fmt.Sprintf("record not decodable: %v", err)
	}

	if err := v.schema.Validate(doc); err != nil {
		return false, err.Error()
	}
	return true, ""
}

var _ Validator = (*RecordValidator)(nil)
