package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed options_schema.json
var optionsSchema []byte

const schemaName = "sitesearch://options_schema.json"

// ValidateOptionsSchema checks a raw JSON options payload against the
// embedded schema. Errors name the offending option path so operators can
// find the typo in their site configuration.
func ValidateOptionsSchema(data []byte) error {
	var instance interface{}
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("%w: options are not valid JSON: %v", ErrInvalidConfig, err)
	}

	var schemaDoc interface{}
	if err := json.Unmarshal(optionsSchema, &schemaDoc); err != nil {
		return fmt.Errorf("embedded options schema is invalid: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaName, schemaDoc); err != nil {
		return fmt.Errorf("failed to register options schema: %w", err)
	}
	schema, err := compiler.Compile(schemaName)
	if err != nil {
		return fmt.Errorf("failed to compile options schema: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(flattenSchemaErrors(validationErr), "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// flattenSchemaErrors walks the validation error tree and renders each leaf
// with a JSON path to the bad option.
func flattenSchemaErrors(validationErr *jsonschema.ValidationError) []string {
	if len(validationErr.Causes) == 0 {
		path := "$"
		if len(validationErr.InstanceLocation) > 0 {
			path = "$." + strings.Join(validationErr.InstanceLocation, ".")
		}
		return []string{fmt.Sprintf("%s: %s", path, validationErr.Error())}
	}
	var out []string
	for _, cause := range validationErr.Causes {
		out = append(out, flattenSchemaErrors(cause)...)
	}
	return out
}
