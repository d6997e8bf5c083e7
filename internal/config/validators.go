package config

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// newValidator builds a validator with the custom rules used by Config.
func newValidator() (*validator.Validate, error) {
	validate := validator.New()

	if err := validate.RegisterValidation("exclusive", validateExclusive); err != nil {
		return nil, fmt.Errorf("registering exclusive validation: %w", err)
	}

	return validate, nil
}

// validateExclusive checks that the tagged field and the field named in the
// tag parameter are not both set. Only string fields participate.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	otherField := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && otherField.Kind() == reflect.String {
		return !(field.String() != "" && otherField.String() != "")
	}

	return true
}
