package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/prubianes/guit-app-api/internal/errors"
)

// BindingError classifies an error returned by gin's ShouldBindJSON.
// Field-level problems (failed rules, wrong JSON types) map to fallback.
// A body that is not a JSON object at all maps to INVALID_REQUEST_BODY.
func BindingError(err error, fallback *apperrors.AppError) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return apperrors.WithMessage(fallback, strings.Join(msgs, "; "))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.WithMessage(fallback, fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.String()))
	}

	return apperrors.ErrInvalidRequestBody
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s %s characters", field, bound, fe.Param())
		}
		return fmt.Sprintf("%s must be %s %s", field, bound, fe.Param())
	case "transaction_type", "category_type":
		return field + " must be income or expense"
	case "budget_period":
		return field + " must be weekly, monthly or yearly"
	}
	return fmt.Sprintf("%s failed on %s", field, fe.Tag())
}
