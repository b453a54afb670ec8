package models

import "github.com/go-playground/validator/v10"

// validate mirrors the storage constraints (NOT NULL, column sizes) declared in the gorm tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs the shared validator against any tagged struct, such as a form binding.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
