package validation

import (
	"fmt"
	"regexp"
	"strings"

	errors "github.com/bcits/ticketdesk/internal"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case string:
			if v == "" {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		case int64:
			if v == 0 {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		case *string:
			if v == nil || *v == "" {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok {
			if len(v) < min {
				message := fmt.Sprintf("%s must be at least %d characters", fv.FieldName, min)
				return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok {
			if len(v) > max {
				message := fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max)
				return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

// Matches validates a string against a compiled pattern.
func (fv *FieldValidator) Matches(pattern *regexp.Regexp, message string, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok && v != "" {
			if !pattern.MatchString(v) {
				return errors.NewValidationFieldError(fv.FieldName, message, code)
			}
		}
		return nil
	})
	return fv
}

// OneOf validates that a string value is one of the allowed values.
func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok && v != "" {
			for _, a := range allowed {
				if v == a {
					return nil
				}
			}
			message := fmt.Sprintf("%s must be one of: %s", fv.FieldName, strings.Join(allowed, ", "))
			return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if err := validator(field.Value); err != nil {
				if appErr, ok := errors.IsAppError(err); ok {
					if details, ok := appErr.Details.(errors.ValidationErrors); ok {
						validationErrors = append(validationErrors, details.Errors...)
					} else {
						validationErrors = append(validationErrors, errors.ValidationError{
							Field:   field.FieldName,
							Message: appErr.Message,
							Code:    string(appErr.Code),
						})
					}
				}
			}
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

var (
	accountNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)
	hexColorPattern    = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	emailPattern       = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	upperPattern       = regexp.MustCompile(`[A-Z]`)
	lowerPattern       = regexp.MustCompile(`[a-z]`)
	specialPattern     = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>_\-+=\[\]\\;'` + "`" + `~/]`)
)

// ValidateAccountName enforces the lowercase machine-name convention for
// tenant names. Must reject before any database write.
func ValidateAccountName(name string) *errors.AppError {
	validator := NewValidator()
	validator.Field("name", name).
		Required().
		MaxLength(255).
		Matches(accountNamePattern, "name must contain only lowercase letters, digits and underscores", errors.ErrCodeInvalidName)
	return validator.Validate()
}

func ValidateHexColor(color string) *errors.AppError {
	validator := NewValidator()
	validator.Field("color", color).
		Matches(hexColorPattern, "color must be a hex color like #6B7280", errors.ErrCodeInvalidColor)
	return validator.Validate()
}

func ValidateEmail(email string) *errors.AppError {
	validator := NewValidator()
	validator.Field("email", email).
		Required().
		Matches(emailPattern, "email must be a valid address", errors.ErrCodeValidationFailed)
	return validator.Validate()
}

// ValidatePasswordComplexity applies the password policy: minimum length,
// upper, lower and special characters, and not containing the email prefix.
func ValidatePasswordComplexity(password, email string) *errors.AppError {
	if len(password) < 8 {
		return errors.NewValidationFieldError("password", "password must be at least 8 characters", errors.ErrCodeWeakPassword)
	}
	if !upperPattern.MatchString(password) {
		return errors.NewValidationFieldError("password", "password must contain at least 1 uppercase letter", errors.ErrCodeWeakPassword)
	}
	if !lowerPattern.MatchString(password) {
		return errors.NewValidationFieldError("password", "password must contain at least 1 lowercase letter", errors.ErrCodeWeakPassword)
	}
	if !specialPattern.MatchString(password) {
		return errors.NewValidationFieldError("password", "password must contain at least 1 special character", errors.ErrCodeWeakPassword)
	}
	if email != "" {
		prefix := strings.ToLower(strings.SplitN(email, "@", 2)[0])
		if len(prefix) >= 3 && strings.Contains(strings.ToLower(password), prefix) {
			return errors.NewValidationFieldError("password", "password cannot contain your email address", errors.ErrCodeWeakPassword)
		}
	}
	return nil
}
