// Package shared centralizes JSON response writing so every handler
// emits the same envelopes.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "gymdesk/pkg/domain-errors"
)

// WriteJSON writes a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the HTTP error envelope.
// Non-domain errors collapse to a generic internal failure so transport
// never leaks storage details.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             string(code),
		"error_description": dErrors.Message(err),
	})
}
