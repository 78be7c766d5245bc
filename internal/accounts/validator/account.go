package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"tigminoo/pkg/logger"
	"tigminoo/pkg/model"

	"github.com/go-playground/validator/v10"
)

// emailRegex reproduces the registration email shape check: one local part,
// one domain with at least one dot, no whitespace.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

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

// RegisterInput is the raw registration payload. The password only exists
// here; it is hashed before it reaches the model.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Surname  string `json:"surname" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email_shape"`
	Phone    string `json:"phone" validate:"required,min=6,max=20"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type LoginInput struct {
	Email    string     `json:"email" validate:"required"`
	Password string     `json:"password" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=client host"`
}

type AccountValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAccountValidator(log *logger.Logger) *AccountValidator {
	v := validator.New()

	if err := v.RegisterValidation("email_shape", validateEmailShape); err != nil {
		log.Fatal("Failed to register 'email_shape' validator", "error", err)
	}

	return &AccountValidator{
		validate: v,
		logger:   log,
	}
}

func validateEmailShape(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func (v *AccountValidator) ValidateRegister(input *RegisterInput) error {
	return v.translate(v.validate.Struct(input))
}

func (v *AccountValidator) ValidateLogin(input *LoginInput) error {
	return v.translate(v.validate.Struct(input))
}

func (v *AccountValidator) translate(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return v.translateValidationErrors(validationErrs)
	}
	return err
}

func (v *AccountValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "email_shape":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
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
