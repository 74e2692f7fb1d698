package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError describes one problem with an app target definition.
type ValidationError struct {
	App     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.App, e.Message)
}

// ValidationResult contains the results of validating a theme definition.
// FileMissing is set when the target file could not be found; that is the
// one validation failure that counts against the overall exit status.
type ValidationResult struct {
	Valid       bool
	FileMissing bool
	Errors      []*ValidationError
}

// AddError adds a validation error to the result.
func (r *ValidationResult) AddError(app, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{
		App:     app,
		Message: message,
	})
}

// First returns the first recorded error, or nil.
func (r *ValidationResult) First() *ValidationError {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// ValidateApp checks a single app target definition. File existence is
// verified here; whether the query actually matches is left to the engine.
func ValidateApp(app *App) *ValidationResult {
	result := &ValidationResult{
		Valid:  true,
		Errors: make([]*ValidationError, 0),
	}

	if app.File == "" {
		result.AddError(app.Name, "no file specified.")
		return result
	}
	if app.Dark == "" {
		result.AddError(app.Name, "no dark theme specified.")
	}
	if app.Light == "" {
		result.AddError(app.Name, "no light theme specified.")
	}
	if app.Query == "" {
		result.AddError(app.Name, "no query specified.")
		return result
	}
	if !strings.Contains(app.Query, Placeholder) {
		result.AddError(app.Name, "query does not contain placeholder '{theme}'.")
		return result
	}
	if _, err := os.Stat(app.File); err != nil {
		result.FileMissing = true
		result.AddError(app.Name, fmt.Sprintf("filepath '%s' do not exists.", app.File))
	}

	return result
}

// ValidateTheme validates every app target in the theme.
func ValidateTheme(theme *Theme) *ValidationResult {
	result := &ValidationResult{
		Valid:  true,
		Errors: make([]*ValidationError, 0),
	}
	for _, app := range theme.Apps {
		appResult := ValidateApp(app)
		if !appResult.Valid {
			result.Valid = false
			result.FileMissing = result.FileMissing || appResult.FileMissing
			result.Errors = append(result.Errors, appResult.Errors...)
		}
	}
	return result
}
