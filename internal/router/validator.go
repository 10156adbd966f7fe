package router

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator with the project's custom tags registered:
// hasletter (at least one letter) and personname (letters and spaces only).
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("hasletter", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if unicode.IsLetter(r) {
				return true
			}
		}
		return false
	})
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsLetter(r) && r != ' ' {
				return false
			}
		}
		return true
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
