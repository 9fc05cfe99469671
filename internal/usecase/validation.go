package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func validateStruct(input any) []ValidationError {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Field: "input", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fe.Field(), Message: messageForTag(fe)})
	}
	return out
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is invalid"
	case "http_url", "url":
		return "must be a valid URL"
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

func ValidateLeadInput(input *LeadInput) []ValidationError {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.Email = entity.NormalizeEmail(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Location = strings.TrimSpace(input.Location)
	input.Status = strings.ToUpper(strings.TrimSpace(input.Status))

	errs := validateStruct(input)
	if input.Status != "" && !entity.LeadStatus(input.Status).Valid() {
		errs = append(errs, ValidationError{"status", "must be one of NEW, CONTACTED, REPLIED, MEETING_BOOKED, LOST"})
	}
	return errs
}

func ValidateTemplateInput(input *TemplateInput) []ValidationError {
	input.Name = strings.TrimSpace(input.Name)
	if strings.TrimSpace(input.Subject) == "" {
		input.Subject = ""
	}
	if strings.TrimSpace(input.Body) == "" {
		input.Body = ""
	}
	return validateStruct(input)
}

func ValidateOfferConfigInput(input *OfferConfigInput) []ValidationError {
	input.NicheName = strings.TrimSpace(input.NicheName)
	input.ICPDescription = strings.TrimSpace(input.ICPDescription)
	input.OfferDescription = strings.TrimSpace(input.OfferDescription)
	input.FromName = strings.TrimSpace(input.FromName)
	input.FromEmail = strings.TrimSpace(input.FromEmail)
	input.CalendlyURL = strings.TrimSpace(input.CalendlyURL)
	return validateStruct(input)
}

func validationMessage(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
