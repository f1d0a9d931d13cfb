package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
	apperrors "github.com/jwalitptl/clinic-dashboard/pkg/errors"
)

// Result is the outcome of validating user-entered data. It is a success
// when Errors is empty.
type Result struct {
	Errors []apperrors.FieldError `json:"errors,omitempty"`
}

func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Err converts a failed result into a validation AppError, or nil.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return apperrors.NewValidation(r.Errors)
}

// Add appends a field error raised outside of struct tags.
func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, apperrors.FieldError{Field: field, Message: message})
}

// Validator provides validation functionality
type Validator interface {
	Validate(obj interface{}) Result
}

type validate struct {
	v        *validator.Validate
	messages map[string]string
}

var defaultMessages = map[string]string{
	"required": "Field is required",
	"email":    "Invalid email format",
	"clock":    "Invalid time, expected HH:MM or HH:MM AM/PM",
	"isodate":  "Invalid date, expected YYYY-MM-DD",
	"numeric":  "Must be a valid number",
}

func New() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := datekey.ParseClock(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := datekey.ParseDay(fl.Field().String())
		return err == nil
	})

	return &validate{v: v, messages: defaultMessages}
}

func (v *validate) Validate(obj interface{}) Result {
	var res Result
	err := v.v.Struct(obj)
	if err == nil {
		return res
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Add("", err.Error())
		return res
	}
	for _, e := range errs {
		res.Add(e.Field(), v.message(e))
	}
	return res
}

func (v *validate) message(e validator.FieldError) string {
	if msg, ok := v.messages[e.Tag()]; ok {
		return msg
	}
	switch e.Tag() {
	case "min", "gte":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("Must be at least %s", e.Param())
	case "max", "lte":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must not exceed %s characters", e.Param())
		}
		return fmt.Sprintf("Must not exceed %s", e.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", e.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(e.Param(), " ", ", "))
	}
	return e.Error()
}
