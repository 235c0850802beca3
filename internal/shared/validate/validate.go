package validate

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	"social-service/internal/shared/apperr"
)

var (
	once sync.Once
	v    *validator.Validate

	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		})
	})
	return v
}

// Struct validates tagged request payloads, converting validator failures
// into the shared validation error kind.
func Struct(s any) error {
	if err := instance().Struct(s); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok || len(errs) == 0 {
			return apperr.Validation("invalid payload")
		}
		fe := errs[0]
		return apperr.Validation("field %q fails rule %q", fe.Field(), fe.Tag())
	}
	return nil
}

// Var validates a single value against a rule, for query parameters.
func Var(value any, rule, name string) error {
	if err := instance().Var(value, rule); err != nil {
		return apperr.Validation("field %q fails rule %q", name, rule)
	}
	return nil
}
