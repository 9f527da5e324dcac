package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeErrors writes the field-keyed error payload all endpoints share:
// {"errors": {"field": "message"}}.
func writeErrors(w http.ResponseWriter, status int, errs map[string]string) {
	writeJSON(w, status, map[string]interface{}{"errors": errs})
}

// fieldError is shorthand for a single-field error payload.
func fieldError(w http.ResponseWriter, status int, field, message string) {
	writeErrors(w, status, map[string]string{field: message})
}

// serverError logs the underlying error and answers with the generic 500
// payload. Store errors are never surfaced to clients.
func serverError(w http.ResponseWriter, context string, err error) {
	log.Printf("%s: %v", context, err)
	fieldError(w, http.StatusInternalServerError, "server", "Server error")
}

// decodeBody decodes the request body into dst, answering 400 on malformed
// JSON. Returns false when the caller should stop.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fieldError(w, http.StatusBadRequest, "server", "Invalid request body")
		return false
	}
	return true
}
