// Package schema validates presentation documents before they enter the
// store. The import endpoint and the offline export command both run
// documents through it.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed presentation.schema.json
var presentationSchema []byte

const schemaURL = "https://liturgica.github.io/lectern/presentation.schema.json"

// Validator checks presentation documents against the JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded presentation schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(presentationSchema)); err != nil {
		return nil, fmt.Errorf("failed to add presentation schema: %w", err)
	}
	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile presentation schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// ValidateDocument checks raw JSON bytes against the presentation schema.
func (v *Validator) ValidateDocument(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("document does not match presentation schema: %w", err)
	}
	return nil
}
