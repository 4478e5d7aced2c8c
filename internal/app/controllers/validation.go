package controllers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// studentNoRegex accepts the institutional student number format:
// digits, optionally with a leading letter block (e.g. "20240042",
// "B2024001").
var studentNoRegex = regexp.MustCompile(`^[A-Za-z]{0,2}[0-9]{4,12}$`)

// RegisterValidations installs the custom form validation rules on the
// binding engine. Call once at startup, before routes are served.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("student_no", func(fl validator.FieldLevel) bool {
		return studentNoRegex.MatchString(fl.Field().String())
	})
}
