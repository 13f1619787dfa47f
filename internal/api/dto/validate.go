package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/stormkid2009/restooo/pkg/util"
)

var validate = validator.New()

// Validate checks a request struct against its validation tags and maps
// failures to a 400 validation error with per-field details.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]any, len(validationErrs))
		for _, e := range validationErrs {
			details[strings.ToLower(e.Field())] = fmt.Sprintf("failed on the '%s' rule", e.Tag())
		}
		return apperrors.NewValidationError("request validation failed", details)
	}
	return apperrors.NewValidationError("invalid request body", nil)
}
