// Package errors writes JSON responses shared by handlers and middleware.
package errors

import (
	"encoding/json"
	"log"
	"net/http"

	pkgerrors "github.com/chybatronik/goUserRegistry/pkg/errors"
)

// MessageResponse is the body of every error response.
type MessageResponse struct {
	Message string `json:"message"`
}

func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

// WriteJSON writes body as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) error {
	setSecurityHeaders(w)
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(body)
}

// WriteMessage writes {"message": message} with the given status code.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	if err := WriteJSON(w, statusCode, MessageResponse{Message: message}); err != nil {
		log.Printf("Failed to encode error response - Status: %d, Error: %v", statusCode, err)
	}
}

// WriteError writes err as a message response. A *UserError anywhere in the
// chain decides the status; anything else becomes a generic 500 so internal
// details never reach the client.
func WriteError(w http.ResponseWriter, err error) {
	userErr, ok := pkgerrors.GetUserError(err)
	if !ok {
		userErr = pkgerrors.ErrInternal
	}
	WriteMessage(w, userErr.GetHTTPStatus(), userErr.Message)
}

// WriteMethodNotAllowed writes a 405 listing the allowed methods.
func WriteMethodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	WriteError(w, pkgerrors.ErrMethodNotAllowed)
}
