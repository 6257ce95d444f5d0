package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/docaura/backend/internal/domain"
)

// RespondJSON writes a JSON response with the given status code.
// It handles encoding errors safely by marshaling first, preventing
// partial responses if encoding fails after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		// Encoding failed - return 500 instead
		RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// errorBody is the wire shape of every error response: an "error" string
// plus optional machine-actionable fields (used, limit, upgrade_url, ...).
type errorBody struct {
	Message string
	Extra   map[string]interface{}
}

func (b errorBody) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{
		"error": b.Message,
	}
	for k, v := range b.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// RespondError writes a JSON error response with an "error" string field.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondErrorWithExtras(w, status, message, nil)
}

// RespondErrorWithExtras writes a JSON error response with additional
// top-level fields alongside "error".
func RespondErrorWithExtras(w http.ResponseWriter, status int, message string, extras map[string]interface{}) {
	payload, err := json.Marshal(errorBody{Message: message, Extra: extras})
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondDomainError maps a domain error to its HTTP response, including
// any machine-actionable fields the error carries. Unknown errors become
// an opaque 500.
func RespondDomainError(w http.ResponseWriter, err error) {
	var fieldErr domain.FieldError
	if errors.As(err, &fieldErr) {
		RespondErrorWithExtras(w, fieldErr.StatusCode(), fieldErr.Error(), fieldErr.Fields())
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		RespondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrValidation):
		RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		RespondError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
