// Package validation evaluates ordered request rule lists. Rules run in the
// order they are declared and evaluation stops at the first failure, so the
// caller always gets exactly one message back.
package validation

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/go-playground/validator/v10"
)

var fieldValidator = validator.New()

// Error is the first failed rule of a schema.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// CheckFunc reports whether a non-blank field passes. A non-nil error means
// the check itself could not run (for example a store lookup failed).
type CheckFunc func(ctx context.Context, f Field) (bool, error)

type Rule struct {
	Field    string
	Message  string
	tag      string
	check    CheckFunc
	required bool
}

// Required fails when the field is absent, null or blank.
func Required(field, message string) Rule {
	return Rule{Field: field, Message: message, required: true}
}

// Tag applies a validator tag (for example "email" or "min=2,max=100") to
// the field value.
func Tag(field, tag, message string) Rule {
	return Rule{Field: field, Message: message, tag: tag}
}

// Check applies an arbitrary predicate to the field.
func Check(field, message string, fn CheckFunc) Rule {
	return Rule{Field: field, Message: message, check: fn}
}

// IsString fails when the value arrived as a JSON number or composite.
func IsString(field, message string) Rule {
	return Check(field, message, func(_ context.Context, f Field) (bool, error) {
		return f.IsString, nil
	})
}

// EmailAddress is a second, stricter email check. It accepts only a bare
// address that round-trips through the RFC 5322 parser unchanged.
func EmailAddress(field, message string) Rule {
	return Check(field, message, func(_ context.Context, f Field) (bool, error) {
		return IsEmailAddress(f.Trimmed()), nil
	})
}

func IsEmailAddress(v string) bool {
	addr, err := mail.ParseAddress(v)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == v
}

type Schema []Rule

// Validate runs the schema against values keyed by field name. Optional rules
// are skipped for blank fields.
func (s Schema) Validate(ctx context.Context, values map[string]Field) error {
	for _, rule := range s {
		f := values[rule.Field]

		if rule.required {
			if f.Blank() {
				return &Error{Field: rule.Field, Message: rule.Message}
			}
			continue
		}
		if f.Blank() {
			continue
		}

		ok, err := rule.passes(ctx, f)
		if err != nil {
			return fmt.Errorf("validating %s: %w", rule.Field, err)
		}
		if !ok {
			return &Error{Field: rule.Field, Message: rule.Message}
		}
	}
	return nil
}

func (r Rule) passes(ctx context.Context, f Field) (bool, error) {
	if r.check != nil {
		return r.check(ctx, f)
	}

	err := fieldValidator.Var(f.Value, r.tag)
	if err == nil {
		return true, nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return false, nil
	}
	return false, err
}
