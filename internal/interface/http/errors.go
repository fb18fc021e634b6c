package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/smartstart/smartstart-money/internal/domain/shared"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// statusFor maps an error to its HTTP status and public error code.
func statusFor(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	case errors.Is(err, shared.ErrExpired):
		return http.StatusNotFound, "session_expired"
	case shared.IsValidation(err):
		return http.StatusBadRequest, "validation_error"
	case shared.IsUnauthorized(err):
		return http.StatusUnauthorized, "unauthorized"
	case shared.IsForbidden(err):
		return http.StatusForbidden, "forbidden"
	case shared.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, shared.ErrOptimisticLock):
		return http.StatusConflict, "conflict"
	case shared.IsConflict(err):
		return http.StatusConflict, "invalid_state"
	case errors.Is(err, shared.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limit_exceeded"
	case errors.Is(err, shared.ErrServiceUnavailable),
		errors.Is(err, shared.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "service_unavailable"
	default:
		return http.StatusInternalServerError, "internal_server_error"
	}
}

// writeError renders err in the JSON envelope. Internal details of 5xx
// errors are logged, not returned.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)

	apiErr := &APIError{Code: code, Message: publicMessage(err), Field: shared.FieldOf(err)}
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed",
			logger.String("path", r.URL.Path),
			logger.Int("status", status),
			logger.Err(err),
		)
		apiErr.Message = http.StatusText(status)
		apiErr.Field = ""
	}

	writeAPIError(w, r, status, apiErr)
}

func publicMessage(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

func missingField(name string) error {
	return shared.NewFieldError("http", "Decode", name, "is required")
}

// decodeJSON reads a JSON body into dst. Unknown fields are rejected. An empty
// body is accepted only when allowEmpty is set.
func decodeJSON(r *http.Request, dst interface{}, allowEmpty bool) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		if allowEmpty {
			return nil
		}
		return shared.NewFieldError("http", "Decode", "body", "is required")
	default:
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return shared.WrapError("http", "Decode", shared.ErrInvalidInput, "malformed JSON body", err)
	}

	if dec.More() {
		return shared.NewDomainError("http", "Decode", shared.ErrInvalidInput, "body must hold a single JSON object")
	}
	return nil
}
