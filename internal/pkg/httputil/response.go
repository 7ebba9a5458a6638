package httputil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/oxmics/metics-site/internal/pkg/logger"
)

// ErrorResponse is the standard error envelope for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code. The data is
// serialized and Content-Type is set automatically.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("response encode failed", "error", err.Error())
	}
}

// OK writes a 200 response with the given data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// NoContent writes a 204 response with no body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes a JSON error response. Use for client errors (4xx).
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// BadRequest writes a 400 error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// MethodNotAllowed writes a 405 error.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// UnprocessableEntity writes a 422 error for failed field validation.
func UnprocessableEntity(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnprocessableEntity, message)
}

// TooManyRequests writes a 429 error with a Retry-After header rounded
// up to whole seconds so clients get a usable numeric retry signal.
func TooManyRequests(w http.ResponseWriter, retryAfter time.Duration, message string) {
	secs := int64((retryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))
	Error(w, http.StatusTooManyRequests, message)
}

// InternalError writes a 5xx error. The internal error is logged for
// operators but only the public message is returned to the caller, so
// transport credentials and config never leak into responses.
func InternalError(w http.ResponseWriter, internalErr error, publicMsg string) {
	if internalErr != nil {
		logger.Error("internal error", "detail", internalErr.Error(), "public_msg", publicMsg)
	}
	Error(w, http.StatusInternalServerError, publicMsg)
}
