package validation

import (
	"github.com/go-playground/validator/v10"
)

// Validator adapts validator.Validate to echo.Validator.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

// Engine exposes the underlying validator so controllers can share it.
func (v *Validator) Engine() *validator.Validate { return v.v }

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}
