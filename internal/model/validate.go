package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// report json names so messages match what the client sent
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("appointment_status", func(fl validator.FieldLevel) bool {
		return AppointmentStatus(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("invoice_status", func(fl validator.FieldLevel) bool {
		return InvoiceStatus(fl.Field().String()).Valid()
	})
}

// Validate checks struct tags and returns a single error listing every
// offending field, or nil.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "appointment_status":
		return fmt.Sprintf("%s must be one of Confirmed, Pending, Completed, Cancelled", fe.Field())
	case "invoice_status":
		return fmt.Sprintf("%s must be one of draft, sent, paid, overdue", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
