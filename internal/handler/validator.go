package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("userid", validateUserID)
	_ = v.RegisterValidation("review_status", validateReviewStatus)
	_ = v.RegisterValidation("notification_kind", validateNotificationKind)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by lowercased field name
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "email":
			errs[field] = "Invalid email format"
		case "userid":
			errs[field] = "Invalid user id"
		case "review_status":
			errs[field] = "Must be approved or rejected"
		case "notification_kind":
			errs[field] = "Must be notice or story"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt", "gte":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "url":
			errs[field] = "Invalid URL"
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateUserID(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	// Allow empty if not required (handled by 'required' tag if needed)
	if raw == "" {
		return true
	}
	_, err := domain.ParseUserID(raw)
	return err == nil
}

func validateReviewStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case domain.ImageStatusApproved, domain.ImageStatusRejected:
		return true
	}
	return false
}

func validateNotificationKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", domain.NotificationKindNotice, domain.NotificationKindStory:
		return true
	}
	return false
}
