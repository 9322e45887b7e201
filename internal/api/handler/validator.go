package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to
// echo.Echo.Validator. Registers the bank-field validators:
//
//	ifsc   – 4 letters, a literal zero, 6 alphanumerics (case-insensitive,
//	         stored uppercase)
//	accnum – 9 to 18 digits, digits only
func NewValidator() *echoValidator {
	v := validator.New()

	_ = v.RegisterValidation("ifsc", func(fl validator.FieldLevel) bool {
		return domain.IFSCPattern.MatchString(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
	})
	_ = v.RegisterValidation("accnum", func(fl validator.FieldLevel) bool {
		return domain.AccountNumberPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Field errors are joined
// into a single message string.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, ", "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "ifsc":
		return field + " must be a valid IFSC code"
	case "accnum":
		return field + " must be 9 to 18 digits"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s can not be more than %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
