package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON or WriteError so the API has one
// success shape (the DTO itself) and one error shape:
//
//	{"timestamp":"2024-03-01T10:00:00","message":"Project not found with id: 7",
//	 "details":"Resource not found","path":"/api/public/projects/7"}
//
// Validation failures add a "validationErrors" map of field → message.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paul-ayesiga/portfolio-service/internal/apperror"
	"github.com/paul-ayesiga/portfolio-service/internal/auth"
	"github.com/paul-ayesiga/portfolio-service/internal/dto"
)

// ErrorResponse is the error body returned by every endpoint except
// registration.
type ErrorResponse struct {
	Timestamp        string            `json:"timestamp"`
	Message          string            `json:"message"`
	Details          string            `json:"details"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// WriteError is the auth.ErrorWriter used for denied admin requests.
var _ auth.ErrorWriter = WriteError

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// WriteError maps a domain error to its HTTP status and writes the error
// envelope. Unknown errors become 500 and their text is not exposed.
//
// ERROR MAPPING:
//
//	apperror.ErrNotFound     → 404
//	apperror.ErrAccessDenied → 403
//	apperror.ErrValidation   → 400 (+ validationErrors)
//	apperror.ErrIntegration  → 400
//	apperror.ErrConflict     → 409
//	apperror.ErrMethodNotAllowed → 405
//	anything else            → 500
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{
		Timestamp: time.Now().UTC().Format(dto.LocalDateTimeLayout),
		Path:      r.URL.Path,
	}

	var appErr *apperror.AppError
	errors.As(err, &appErr)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
		resp.Message = err.Error()
		resp.Details = "Resource not found"
	case errors.Is(err, apperror.ErrAccessDenied):
		status = http.StatusForbidden
		resp.Message = "Access denied"
		resp.Details = err.Error()
	case errors.Is(err, apperror.ErrValidation):
		status = http.StatusBadRequest
		resp.Message = "Validation failed"
		resp.Details = err.Error()
		if appErr != nil {
			resp.ValidationErrors = appErr.Fields
		}
	case errors.Is(err, apperror.ErrIntegration):
		status = http.StatusBadRequest
		resp.Message = err.Error()
		resp.Details = "Identity provider request failed"
	case errors.Is(err, apperror.ErrConflict):
		status = http.StatusConflict
		resp.Message = err.Error()
		resp.Details = "Resource already exists"
	case errors.Is(err, apperror.ErrMethodNotAllowed):
		status = http.StatusMethodNotAllowed
		resp.Message = err.Error()
		resp.Details = "Method not allowed"
	default:
		// NEVER expose internal error text: it can carry SQL or file paths.
		slog.Error("unhandled error",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		resp.Message = "An internal error occurred"
		resp.Details = "An error occurred"
	}

	writeJSON(w, status, resp)
}

// HandleNotFound answers requests that match no route.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, apperror.NoRoute(r.Method, r.URL.Path))
}

// HandleMethodNotAllowed answers a known path requested with the wrong
// method.
func HandleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, apperror.MethodNotAllowed(r.Method, r.URL.Path))
}

// decodeJSON reads the request body into dst. A malformed body is a
// validation error on the "body" field.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("body", fmt.Sprintf("malformed JSON body: %s", err.Error()))
	}
	return nil
}

// int64Param parses a numeric URL parameter. Non-numeric input is a 400, not
// a 404.
func int64Param(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed(name, fmt.Sprintf("%s must be a number, got %q", name, raw))
	}
	return v, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.ValidationFailed(name, fmt.Sprintf("%s must be a number, got %q", name, raw))
	}
	return v, nil
}
