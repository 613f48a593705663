package validation

import (
	"fmt"
	"regexp"

	errors "github.com/hrapp/hr-management/internal"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type ValidatorFunc func(interface{}) *errors.ValidationError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{FieldName: name, Value: value}
	v.fields = append(v.fields, fv)
	return fv
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		missing := false
		switch v := value.(type) {
		case string:
			missing = v == ""
		case int64:
			missing = v == 0
		case *string:
			missing = v == nil || *v == ""
		case nil:
			missing = true
		}
		if missing {
			return &errors.ValidationError{
				Field:   fv.FieldName,
				Message: fmt.Sprintf("%s is required", fv.FieldName),
				Code:    string(errors.ErrCodeValidationFailed),
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Email() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if !emailPattern.MatchString(s) {
			return &errors.ValidationError{
				Field:   fv.FieldName,
				Message: fmt.Sprintf("%s must be a valid email address", fv.FieldName),
				Code:    string(errors.ErrCodeInvalidEmail),
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if len(s) < min {
			return &errors.ValidationError{
				Field:   fv.FieldName,
				Message: fmt.Sprintf("%s must be at least %d characters", fv.FieldName, min),
				Code:    string(errors.ErrCodeValidationFailed),
			}
		}
		return nil
	})
	return fv
}

// Validate runs every registered validator and aggregates failures into a
// single VALIDATION_ERROR AppError, or returns nil when all pass.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var failed []errors.ValidationError
	for _, fv := range v.fields {
		for _, fn := range fv.Validators {
			if verr := fn(fv.Value); verr != nil {
				failed = append(failed, *verr)
				break
			}
		}
	}

	if len(failed) == 0 {
		return nil
	}

	err := errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed)
	return err.WithDetails(errors.ValidationErrors{Errors: failed})
}
