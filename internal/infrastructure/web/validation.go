package web

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"go-wedding/internal/pkg/platform/phone"
)

// RegisterValidators adds the custom binding rules used by request DTOs:
//   - phone: empty or an E.164 number after normalization
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, ok := phone.Parse(s)
		return ok
	})
}
