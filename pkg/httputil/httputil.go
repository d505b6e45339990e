// Package httputil centralizes JSON response writing so every handler produces
// the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/domainerrors"
)

// errorResponse is the uniform error envelope returned to clients.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the HTTP error envelope.
// Internal errors get a generic message; the cause stays server-side.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)

	message := "Internal server error"
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			message = de.Message
		}
	}

	WriteJSON(w, status, errorResponse{Success: false, Error: message})
}
