package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"campusbook/pkg/logger"
	"campusbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger

	// now is swappable so date rules stay testable.
	now func() time.Time
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
		now:      time.Now,
	}
}

// Validate runs the full rule set for a new booking, including the
// past-date rule.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validateFields(booking); err != nil {
		return err
	}

	if booking.Date < model.DateOf(v.now()) {
		return ValidationErrors{
			ValidationError{Field: "Date", Message: "date cannot be in the past"},
		}
	}

	return nil
}

// ValidateExisting re-checks a stored booking after a partial update has
// been merged in. The past-date rule only fires when the update moved the
// booking to a different date; overwriting the status of a booking whose
// date has already passed stays legal.
func (v *BookingValidator) ValidateExisting(booking *model.Booking, dateChanged bool) error {
	if dateChanged {
		return v.Validate(booking)
	}
	return v.validateFields(booking)
}

func (v *BookingValidator) validateFields(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if !booking.Date.Valid() {
		return ValidationErrors{
			ValidationError{Field: "Date", Message: "date must be formatted YYYY-MM-DD"},
		}
	}
	if !booking.StartTime.Valid() {
		return ValidationErrors{
			ValidationError{Field: "StartTime", Message: "start_time must be formatted HH:MM:SS"},
		}
	}
	if !booking.EndTime.Valid() {
		return ValidationErrors{
			ValidationError{Field: "EndTime", Message: "end_time must be formatted HH:MM:SS"},
		}
	}

	if !booking.StartTime.Before(booking.EndTime) {
		return ValidationErrors{
			ValidationError{Field: "EndTime", Message: "end_time must be after start_time"},
		}
	}

	return nil
}

func (v *BookingValidator) ValidateUpdate(update *model.BookingUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.Date != nil && !update.Date.Valid() {
		return ValidationErrors{
			ValidationError{Field: "Date", Message: "date must be formatted YYYY-MM-DD"},
		}
	}
	if update.StartTime != nil && !update.StartTime.Valid() {
		return ValidationErrors{
			ValidationError{Field: "StartTime", Message: "start_time must be formatted HH:MM:SS"},
		}
	}
	if update.EndTime != nil && !update.EndTime.Valid() {
		return ValidationErrors{
			ValidationError{Field: "EndTime", Message: "end_time must be formatted HH:MM:SS"},
		}
	}

	if update.StartTime != nil && update.EndTime != nil {
		if !update.StartTime.Before(*update.EndTime) {
			return ValidationErrors{
				ValidationError{Field: "EndTime", Message: "end_time must be after start_time"},
			}
		}
	}

	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
