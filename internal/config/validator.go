package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/aleister1102/respdiff/internal/normalizer"
	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator with the application's custom tags registered.
func newValidator() *validator.Validate {
	validate := validator.New()

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("outputformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		return format == "" || slices.Contains(SupportedOutputFormats, format)
	})

	_ = validate.RegisterValidation("exclusionpath", func(fl validator.FieldLevel) bool {
		return ValidateExclusionPath(fl.Field().String()) == nil
	})

	return validate
}

// ValidateExclusionPath reports malformed exclusion paths such as "a..b" or
// "items[x]". Redaction itself accepts anything; this catches typos in
// configuration and flags.
func ValidateExclusionPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("exclusion path cannot be empty")
	}
	for i, raw := range strings.Split(path, ".") {
		if raw == "" {
			return fmt.Errorf("exclusion path %q has an empty segment at position %d", path, i+1)
		}
		if !strings.ContainsAny(raw, "[]") {
			continue
		}
		seg := normalizer.ParseSegment(raw)
		if seg.Subscript == normalizer.SubscriptNone || strings.ContainsAny(seg.Name, "[]") {
			return fmt.Errorf("exclusion path %q has a malformed subscript in %q; use [N] or [*]", path, raw)
		}
	}
	return nil
}

// Validate checks cfg against the rules in its struct tags.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration cannot be nil")
	}

	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	var validationErrorMessages []string
	for _, e := range errs {
		fieldName := strings.TrimPrefix(e.StructNamespace(), "Config.")
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", fieldName, e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		validationErrorMessages = append(validationErrorMessages, msg)
	}
	return fmt.Errorf("%w: validation failed:\n  %s", common.ErrInvalidConfiguration, strings.Join(validationErrorMessages, "\n  "))
}
