package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"moodle-bridge/internal/domain"
	"moodle-bridge/internal/dto"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so errors match the request body.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateLinkAccountRequest checks the credentials are present. Whitespace-only
// values count as missing.
func (v *Validator) ValidateLinkAccountRequest(req *dto.LinkAccountRequest) domain.ValidationErrors {
	if req == nil {
		return domain.ValidationErrors{
			domain.NewMissingFieldError("moodle_username"),
			domain.NewMissingFieldError("moodle_password"),
		}
	}
	trimmed := dto.LinkAccountRequest{
		MoodleUsername: strings.TrimSpace(req.MoodleUsername),
		MoodlePassword: strings.TrimSpace(req.MoodlePassword),
	}
	return v.validateStruct(&trimmed)
}

// ValidateCourseID parses a course id path parameter; it must be a positive integer.
func (v *Validator) ValidateCourseID(raw string) (int64, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError("course_id")}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("course_id", raw)}
	}
	return id, nil
}

func (v *Validator) validateStruct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{Field: "", Code: domain.CodeValidation, Message: err.Error()}}
	}

	var errs domain.ValidationErrors
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			errs = append(errs, domain.NewMissingFieldError(fe.Field()))
		default:
			errs = append(errs, domain.NewInvalidFormatError(fe.Field(), nil))
		}
	}
	return errs
}
