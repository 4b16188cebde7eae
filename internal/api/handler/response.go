package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"scaffold-rental/internal/api/handler/dto"
	"scaffold-rental/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, body := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Default().Error("Unhandled internal error", "error", err)
	}
	respondJSON(w, status, body)
}

func statusFor(err error) (int, dto.ErrorResponse) {
	status, detail := http.StatusInternalServerError, dto.ErrorDetail{Message: "An unexpected error occurred."}
	var appErr *apperrors.AppError

	if fields, ok := apperrors.Fields(err); ok {
		detail.Message = "Validation failed."
		detail.Fields = fields
		if len(fields) == 1 {
			for f, msg := range fields {
				detail.Field, detail.Message = f, msg
			}
		}
		return http.StatusBadRequest, dto.ErrorResponse{Error: detail}
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, detail.Message = http.StatusNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, detail.Message = http.StatusConflict, err.Error()
	case errors.Is(err, apperrors.ErrInvalidArgument),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrImmutableField):
		status, detail.Message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, detail.Message = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		status, detail.Message = http.StatusForbidden, "Forbidden"
	case errors.Is(err, apperrors.ErrConnectionUnavailable):
		status, detail.Message = http.StatusServiceUnavailable, "Service unavailable."
	case errors.As(err, &appErr):
		detail.Code, detail.Message = appErr.Code, appErr.Message
	}
	return status, dto.ErrorResponse{Error: detail}
}

// pathParam returns the decoded value of a route parameter. chi matches on
// RawPath only when the request carried one; otherwise the param is already
// decoded and must not be unescaped again.
func pathParam(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return "", fmt.Errorf("%w: %s not found in URL path", apperrors.ErrInvalidArgument, name)
	}
	if r.URL.RawPath == "" {
		return raw, nil
	}
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid %s in URL path", apperrors.ErrInvalidArgument, name)
	}
	return v, nil
}

// logLevelFor keeps expected client errors out of the error log.
func logLevelFor(err error) slog.Level {
	status, _ := statusFor(err)
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelWarn
}

func invalidBody(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
}
