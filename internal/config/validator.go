package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rohankatakam/codeviz/internal/errors"
)

var validate = validator.New()

// ValidationResult holds validation results
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// AddError adds an error to the validation result
func (vr *ValidationResult) AddError(format string, args ...interface{}) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any errors
func (vr *ValidationResult) HasErrors() bool {
	return !vr.Valid || len(vr.Errors) > 0
}

// Error returns a formatted error message
func (vr *ValidationResult) Error() string {
	if !vr.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Configuration validation failed:\n")
	for _, err := range vr.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err))
	}
	return sb.String()
}

// Check runs struct tag validation plus the cross-section rules tags cannot
// express, collecting every problem.
func (c *Config) Check() *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := validate.Struct(c); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrors {
				result.AddError("%s", formatFieldError(fe))
			}
		} else {
			result.AddError("%v", err)
		}
	}

	if _, ok := c.Themes[c.Style.Theme]; c.Style.Theme != "" && !ok {
		result.AddError("style.theme %q is not a configured theme", c.Style.Theme)
	}

	return result
}

// Validate returns a validation error describing every problem, or nil.
func (c *Config) Validate() error {
	result := c.Check()
	if !result.HasErrors() {
		return nil
	}
	return errors.ValidationError(result, "invalid configuration").
		WithContext("problems", len(result.Errors))
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := fieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "ltfield":
		return fmt.Sprintf("%s must be less than %s", field, strings.ToLower(e.Param()))
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, strings.ToLower(e.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex colour, got %q", field, e.Value())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldPath turns "Config.Coupling.MinRatio" into "coupling.minratio".
func fieldPath(namespace string) string {
	namespace = strings.TrimPrefix(namespace, "Config.")
	return strings.ToLower(namespace)
}
