package configloader

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gobwas/glob"

	"github.com/yaklabco/gomkd/pkg/config"
	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/page"
	"github.com/yaklabco/gomkd/pkg/rawdef"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "output.charset").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err joins every error into one, or returns nil when the result is valid.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	outputCharsets = []flags.Charset{flags.CharsetUTF8, flags.CharsetLatin1, flags.CharsetASCII}
	inputCharsets  = []flags.Charset{flags.CharsetUTF8, flags.CharsetLatin1}
)

// Validate checks a configuration for errors and warnings. Every problem
// is reported, not only the first.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Output.Charset != "" && !slices.Contains(outputCharsets, flags.Charset(cfg.Output.Charset)) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.charset",
			Value:   cfg.Output.Charset,
			Message: fmt.Sprintf("invalid charset %q; must be one of: utf-8, iso-8859-1, us-ascii", cfg.Output.Charset),
		})
	}

	if cfg.Output.InputCharset != "" && !slices.Contains(inputCharsets, flags.Charset(cfg.Output.InputCharset)) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.input_charset",
			Value:   cfg.Output.InputCharset,
			Message: fmt.Sprintf("invalid input charset %q; must be one of: utf-8, iso-8859-1", cfg.Output.InputCharset),
		})
	}

	if _, err := page.ParseDoctype(cfg.Output.Doctype); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.doctype",
			Value:   cfg.Output.Doctype,
			Message: fmt.Sprintf("invalid doctype %q; must be one of: transitional, strict, iso", cfg.Output.Doctype),
		})
	}

	if cfg.Workers < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "workers",
			Value:   cfg.Workers,
			Message: "workers must be >= 0 (0 means auto)",
		})
	}

	if cfg.MaxDepth < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_depth",
			Value:   cfg.MaxDepth,
			Message: "max_depth must be >= 0 (0 means the default)",
		})
	}

	if cfg.Highlight != "" && !slices.Contains(styles.Names(), cfg.Highlight) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "highlight",
			Value:   cfg.Highlight,
			Message: fmt.Sprintf("unknown chroma style %q; the fallback style will be used", cfg.Highlight),
		})
	}

	if len(cfg.ASCIIMathDelimiter) > 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "asciimath_delimiter",
			Value:   cfg.ASCIIMathDelimiter,
			Message: "asciimath_delimiter must be a single character",
		})
	}

	validateRawDelimiters(cfg, result)
	validateFlagNames(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateRawDelimiters registers every spec in a scratch table.
func validateRawDelimiters(cfg *config.Config, result *ValidationResult) {
	table := rawdef.New()
	for i, spec := range cfg.RawDelimiters {
		if _, err := table.Register(spec); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("raw_delimiters[%d]", i),
				Value:   spec,
				Message: err.Error(),
			})
		}
	}
}

func validateFlagNames(cfg *config.Config, result *ValidationResult) {
	check := func(field string, names []string) {
		for i, name := range names {
			if _, err := flags.Parse(name); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, i),
					Value:   name,
					Message: err.Error(),
				})
			}
		}
	}
	check("enable", cfg.Enable)
	check("disable", cfg.Disable)
}

// validateIgnorePatterns checks that ignore patterns compile as globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
