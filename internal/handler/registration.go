package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/paul-ayesiga/portfolio-service/internal/apperror"
	"github.com/paul-ayesiga/portfolio-service/internal/dto"
)

type RegistrationService interface {
	Register(ctx context.Context, in dto.Registration) (*dto.RegistrationResult, error)
}

// RegistrationErrorResponse is the error body of the registration endpoint:
// "error" is always set, "type" is "keycloak_error" or "server_error", and
// validation failures carry "validationErrors" instead of "message".
type RegistrationErrorResponse struct {
	Error            string            `json:"error"`
	Message          string            `json:"message,omitempty"`
	Type             string            `json:"type,omitempty"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

type RegistrationHandler struct {
	service RegistrationService
	logger  *slog.Logger
}

func NewRegistrationHandler(svc RegistrationService, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{service: svc, logger: logger}
}

// HandleRegister handles POST /api/public/auth/register.
//
// RESPONSES:
//
//	201 {"message":"User registered successfully","username":"jane"}
//	400 {"error":"Validation failed","validationErrors":{...}}
//	400 {"error":"Registration failed","message":"...","type":"keycloak_error"}
//	500 {"error":"Registration failed","message":"...","type":"server_error"}
func (h *RegistrationHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in dto.Registration
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, err)
		return
	}

	res, err := h.service.Register(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *RegistrationHandler) writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	switch {
	case errors.Is(err, apperror.ErrValidation):
		resp := RegistrationErrorResponse{Error: "Validation failed"}
		if errors.As(err, &appErr) {
			resp.ValidationErrors = appErr.Fields
		}
		h.logger.Warn("registration request rejected", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, apperror.ErrIntegration):
		writeJSON(w, http.StatusBadRequest, RegistrationErrorResponse{
			Error:   "Registration failed",
			Message: err.Error(),
			Type:    "keycloak_error",
		})
	default:
		h.logger.Error("registration failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, RegistrationErrorResponse{
			Error:   "Registration failed",
			Message: "An unexpected error occurred",
			Type:    "server_error",
		})
	}
}
