// Package schemas provides JSON Schema validation for configuration files.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ConfigSchemaPath is the repo-relative path of the audit config schema.
const ConfigSchemaPath = "schemas/audit_config.schema.json"

// ResolveSchemaPath finds a schema file by trying the given relative path
// against the working directory and up to two parent directories, so CLI
// commands and tests resolve the schema regardless of where they run.
// Returns empty string when nothing exists.
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}
	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}
	return ""
}

// FieldError is a single validation failure at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates every schema violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:\n")
	for i, fieldErr := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, fieldErr.Field, fieldErr.Message))
	}
	return sb.String()
}

// SchemaLoadError reports a schema that could not be loaded or parsed.
type SchemaLoadError struct {
	Path  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Path, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateDocument validates a JSON document file against a JSON Schema file.
// Returns *ValidationError on violations, *SchemaLoadError when the schema
// itself is unusable.
func ValidateDocument(schemaPath, documentPath string) error {
	schemaAbs, err := filepath.Abs(schemaPath)
	if err != nil {
		return &SchemaLoadError{Path: schemaPath, Cause: err}
	}
	documentAbs, err := filepath.Abs(documentPath)
	if err != nil {
		return fmt.Errorf("failed to resolve document path %s: %w", documentPath, err)
	}

	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaAbs)
	documentLoader := gojsonschema.NewReferenceLoader("file://" + documentAbs)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Path: schemaPath, Cause: err}
	}

	if !result.Valid() {
		validationErr := &ValidationError{}
		for _, desc := range result.Errors() {
			validationErr.Errors = append(validationErr.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return validationErr
	}
	return nil
}
