package common

import (
	"encoding/json"
	"net/http"

	apperrors "contactkeeper/pkg/errors"
)

// MsgResponse is the body used for confirmation and error messages,
// e.g. {"msg": "Contact deleted"}.
type MsgResponse struct {
	Msg string `json:"msg"`
}

// ValidationResponse carries the itemized field errors of a 400 response
type ValidationResponse struct {
	Errors []apperrors.FieldError `json:"errors"`
}

// RespondJSON writes v as a JSON body with the given status. Payloads are
// written raw (a contact array stays a bare array), matching the public API
// contract.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// RespondMsg writes a {"msg": ...} body with the given status
func RespondMsg(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, MsgResponse{Msg: msg})
}

// RespondValidationErrors writes a 400 with the field-error array
func RespondValidationErrors(w http.ResponseWriter, fields []apperrors.FieldError) {
	RespondJSON(w, http.StatusBadRequest, ValidationResponse{Errors: fields})
}

// RespondAppError maps an application error onto the wire contract.
// Validation errors surface their field list; database and internal errors
// surface a generic message only, the detail stays in the server log.
func RespondAppError(w http.ResponseWriter, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		RespondMsg(w, http.StatusInternalServerError, "Server error - try again")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		RespondValidationErrors(w, appErr.Fields)
	case apperrors.ErrorTypeDatabase, apperrors.ErrorTypeInternal:
		RespondMsg(w, appErr.HTTPStatus, "Server error - try again")
	default:
		RespondMsg(w, appErr.HTTPStatus, appErr.Message)
	}
}

// ParseJSONBody decodes a JSON request body with a size limit
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
