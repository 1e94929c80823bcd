package ui

import (
	"encoding/json"
	"log"
	"net/http"

	"kpiboard/internal/errors"
)

// writeJSON encodes v to the response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}

// httpStatus maps the application error codes onto HTTP statuses.
func httpStatus(err error) int {
	switch errors.Code(err) {
	case errors.CodeParseError, errors.CodeUnsupportedChart:
		return http.StatusBadRequest
	case errors.CodeInvalidColumn:
		return http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage picks the status and user-facing message for err.
// Internal failures are logged with their cause; the client only sees a
// generic message.
func clientMessage(err error) (int, string) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[API] internal error: %v", err)
		return status, "internal error"
	}
	return status, errors.Message(err)
}

// writeError sends the JSON error envelope for err.
func writeError(w http.ResponseWriter, err error) {
	status, message := clientMessage(err)
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  errors.Code(err),
	})
}
