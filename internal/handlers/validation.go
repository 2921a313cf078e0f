package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON reads the request body into dst and runs its validate tags.
// Both malformed JSON and failed rules come back as *errs.ValidationError.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewValidationError("invalid request body: " + err.Error())
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValidationError(err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fieldErrorMsg(fe)))
	}
	return errs.NewValidationError(strings.Join(msgs, "; "))
}

func fieldErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "hexcolor":
		return "must be a hex color"
	case "uuid":
		return "must be a UUID"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min":
		return "value is too short"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "invalid value"
	}
}
