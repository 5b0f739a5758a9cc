package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var iataPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("iata", validateIATACode)
	v.RegisterValidation("valid_uuid", validateUUID)

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// IATA location codes are exactly three letters; case is normalized later.
func validateIATACode(fl validator.FieldLevel) bool {
	return iataPattern.MatchString(fl.Field().String())
}

func validateUUID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	_, err := uuid.Parse(id)
	return err == nil
}
