// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	playground "github.com/go-playground/validator/v10"

	domainerrors "fleetauth/internal/domain/errors"
)

// echoValidator wraps a single validator instance; it is safe for
// concurrent use and caches struct metadata.
type echoValidator struct {
	validate *playground.Validate
}

// New constructs the echo.Validator used by the HTTP server.
func New() *echoValidator {
	return &echoValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Field-level failures collapse into the
// domain's validation error so the error middleware renders them uniformly.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
