package usecase

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aidosk/devfolio-api/internal/entity"
)

// FieldError reports one invalid submission field: JSON path, a stable kind
// code the frontend can branch on, and a human message.
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateBrief checks the whole aggregate. An empty result means every
// required field across all four sections passed.
func ValidateBrief(sub entity.BriefSubmission) []FieldError {
	var errs []FieldError
	errs = append(errs, validateSection("client", sub.Client)...)
	errs = append(errs, validateSection("audience", sub.Audience)...)
	errs = append(errs, validateSection("metrics", sub.Metrics)...)
	errs = append(errs, validateSection("contact", sub.Contact)...)
	return errs
}

// ValidateStep checks only the section owned by a wizard step (1..4).
func ValidateStep(sub entity.BriefSubmission, step int) []FieldError {
	switch step {
	case StepClient:
		return validateSection("client", sub.Client)
	case StepAudience:
		return validateSection("audience", sub.Audience)
	case StepMetrics:
		return validateSection("metrics", sub.Metrics)
	case StepContact:
		return validateSection("contact", sub.Contact)
	default:
		return nil
	}
}

func validateSection(prefix string, section any) []FieldError {
	err := validate.Struct(section)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: prefix, Kind: "invalid", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "ClientSection.name"; swap the struct name for the
		// section's JSON key so paths read "client.name".
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		out = append(out, FieldError{
			Field:   prefix + "." + path,
			Kind:    kindOf(fe),
			Message: messageOf(fe),
		})
	}
	return out
}

func kindOf(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "invalid_email"
	case "url":
		return "invalid_url"
	case "min", "max", "gte", "lte":
		return "out_of_range"
	default:
		return fe.Tag()
	}
}

func messageOf(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must not exceed " + fe.Param()
	default:
		return "is invalid"
	}
}
