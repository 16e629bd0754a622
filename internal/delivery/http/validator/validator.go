// Package validator wires go-playground/validator into echo.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator adapts a validator.Validate instance to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

// New creates the echo request validator.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks the struct tags of the bound input.
func (v *Validator) Validate(i any) error {
	return errors.WithStack(v.validate.Struct(i))
}
