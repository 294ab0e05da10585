package rest

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	apperrors "question-service/internal/utils/errors"

	"github.com/go-playground/validator/v10"
)

// requestValidator implements echo.Validator with go-playground rules.
type requestValidator struct {
	validator *validator.Validate
}

func newRequestValidator() *requestValidator {
	validate := validator.New()

	// Use JSON field names for validation error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &requestValidator{validator: validate}
}

// Validate reports failed required rules as MissingParameters and any other
// rule as a ParseError.
func (v *requestValidator) Validate(i interface{}) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.ParseError("invalid request", err, nil)
	}

	var missing, invalid []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	sort.Strings(missing)
	sort.Strings(invalid)

	if len(missing) > 0 {
		return apperrors.MissingParametersError("missing required fields", map[string]interface{}{
			"fields": missing,
		})
	}
	return apperrors.ParseError("invalid fields", err, map[string]interface{}{
		"fields": invalid,
	})
}
