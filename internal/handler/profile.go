package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paul-ayesiga/portfolio-service/internal/dto"
)

type ProfileService interface {
	List(ctx context.Context) ([]dto.UserProfile, error)
	Get(ctx context.Context, id int64) (*dto.UserProfile, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserProfile, error)
	Create(ctx context.Context, in dto.UserProfile) (*dto.UserProfile, error)
	Update(ctx context.Context, id int64, in dto.UserProfile) (*dto.UserProfile, error)
	Delete(ctx context.Context, id int64) error
}

// ProfileHandler serves user profiles: public lookup by username, everything
// else admin-only.
type ProfileHandler struct {
	service ProfileService
	logger  *slog.Logger
}

func NewProfileHandler(svc ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{service: svc, logger: logger}
}

// HandleGetByUsername handles GET /api/public/profiles/{username}.
func (h *ProfileHandler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	profile, err := h.service.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in dto.UserProfile
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, r, err)
		return
	}

	profile, err := h.service.Create(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

// HandleUpdate handles PUT /api/admin/profiles/{id}. The username in the body
// is ignored.
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var in dto.UserProfile
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, r, err)
		return
	}

	profile, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
