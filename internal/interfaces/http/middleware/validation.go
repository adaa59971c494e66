package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures gin's validator to report field names from
// json/form tags so binding errors match the wire format.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// ValidationErrorMessages turns validator errors into per-field messages.
// Non-validator errors yield a single generic message.
func ValidationErrorMessages(err error) map[string]string {
	messages := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		messages["request"] = err.Error()
		return messages
	}

	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages[e.Field()] = "This field is required"
		case "min":
			messages[e.Field()] = "Value is below the minimum of " + e.Param()
		case "max":
			messages[e.Field()] = "Value exceeds the maximum of " + e.Param()
		case "oneof":
			messages[e.Field()] = "Must be one of: " + e.Param()
		default:
			messages[e.Field()] = "Invalid value"
		}
	}
	return messages
}
