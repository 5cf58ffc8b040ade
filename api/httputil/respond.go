// ABOUTME: Response helpers for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	coreerrors "trends-shared/core/errors"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// WriteError converts a domain error into the appropriate HTTP response.
func WriteError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	WriteJSON(w, StatusForError(err), ErrorResponse{Detail: detailForError(err)})
}

// StatusForError maps domain errors to HTTP status codes.
func StatusForError(err error) int {
	switch {
	case coreerrors.IsNotFound(err):
		return http.StatusNotFound
	case coreerrors.IsValidation(err):
		return http.StatusBadRequest
	case coreerrors.IsUnauthorized(err):
		return http.StatusUnauthorized
	case coreerrors.IsForbidden(err):
		return http.StatusForbidden
	case coreerrors.IsExternalAPI(err):
		var apiErr *coreerrors.ExternalAPIError
		if errors.As(err, &apiErr) {
			// Map external API status codes to our API status codes
			switch {
			case apiErr.StatusCode >= 500:
				return http.StatusServiceUnavailable
			case apiErr.StatusCode == http.StatusTooManyRequests:
				return http.StatusTooManyRequests
			case apiErr.StatusCode >= 400:
				return http.StatusBadRequest
			}
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// detailForError hides internals behind a generic message for 5xx errors.
func detailForError(err error) string {
	switch StatusForError(err) {
	case http.StatusServiceUnavailable:
		return "External service error"
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return err.Error()
	}
}
