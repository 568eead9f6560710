// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	playgroundvalidator "github.com/go-playground/validator/v10"
)

// EchoValidator wraps a validator instance for echo.
type EchoValidator struct {
	validate *playgroundvalidator.Validate
}

// New creates the validator used for request body structs.
func New() *EchoValidator {
	return &EchoValidator{
		validate: playgroundvalidator.New(playgroundvalidator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (v *EchoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
