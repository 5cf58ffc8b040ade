// ABOUTME: Shared struct validation for domain models
// ABOUTME: Converts validator failures into the library's ValidationError type

package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	coreerrors "trends-shared/core/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the validate tags on s and converts the first failure
// into a ValidationError so callers can map it to an HTTP 400.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &coreerrors.ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
		}
	}

	return err
}

func errInvalidStatus(s TaskStatus) error {
	return &coreerrors.ValidationError{
		Field:   "Status",
		Message: fmt.Sprintf("unknown task status %q", s),
	}
}
