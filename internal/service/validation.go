package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"propertyhub/internal/errors"
	"propertyhub/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// maxAmount is the largest value a decimal(12,2) amount column holds.
var maxAmount = decimal.RequireFromString("9999999999.99")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	for tag, fn := range map[string]validator.Func{
		"notblank":         validators.NotBlank,
		"positive_integer": positiveInteger,
		"positive_amount":  positiveAmount,
		"max_amount":       withinMaxAmount,
		"calendar_date":    calendarDate,
		"email_shape":      emailShape,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validator: %v", tag, err))
		}
	}
	return v
}

func positiveInteger(fl validator.FieldLevel) bool {
	n, err := strconv.ParseUint(strings.TrimSpace(fl.Field().String()), 10, 64)
	return err == nil && n > 0
}

func positiveAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && d.Round(2).IsPositive()
}

func withinMaxAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && d.Round(2).LessThanOrEqual(maxAmount)
}

func calendarDate(fl validator.FieldLevel) bool {
	_, err := model.ParseDate(fl.Field().String())
	return err == nil
}

func emailShape(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// messages maps "Field.tag" to the client-facing text of a violation.
type messages map[string]string

// validateStruct runs the struct tags of input and returns a
// *errors.ValidationError holding one message per violated field, in field
// order.
func validateStruct(input interface{}, msgs messages) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate input: %w", err)
	}

	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := msgs[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		violations = append(violations, msg)
	}
	return errors.NewValidationError(violations...)
}
