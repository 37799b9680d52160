package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrMessageInternal is the generic message for 500 responses. Internal detail
// stays in the server log.
const ErrMessageInternal = "Server error"

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// JSONError writes the {success:false, message} envelope.
func JSONError(w http.ResponseWriter, message string, status int) {
	JSON(w, status, map[string]any{"success": false, "message": message})
}

// JSONValidationError writes a 400 with field-level details.
func JSONValidationError(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"message": "Validation failed",
		"fields":  fields,
	})
}

// validationFields flattens validator errors into a field -> problem map.
func validationFields(err error) map[string]string {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["body"] = err.Error()
		return fields
	}
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			fields[e.Field()] = "required"
		case "oneof":
			fields[e.Field()] = "must be one of: " + e.Param()
		case "datetime":
			fields[e.Field()] = "must be a date in YYYY-MM-DD format"
		case "gte":
			fields[e.Field()] = "must be at least " + e.Param()
		case "max":
			fields[e.Field()] = "must be at most " + e.Param() + " characters"
		default:
			fields[e.Field()] = "invalid"
		}
	}
	return fields
}
