package validator

import (
	"errors"

	"mentorship/internal/pkg/hhmm"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.SetTagName("binding")
	_ = validate.RegisterValidation("hhmm", validateClock)
}

// Validate checks `binding` tags outside of gin, e.g. for service callers
// that never went through a handler. It returns field namespace -> failed tag.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Namespace()] = fe.Tag()
	}
	return out
}

// RegisterGinValidations makes the custom tags usable in `binding:"..."`.
func RegisterGinValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("hhmm", validateClock)
}

func validateClock(fl validator.FieldLevel) bool {
	return hhmm.Valid(fl.Field().String())
}
