package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/paul-ayesiga/portfolio-service/internal/dto"
)

type ExperienceService interface {
	List(ctx context.Context) ([]dto.Experience, error)
	ListCurrent(ctx context.Context) ([]dto.Experience, error)
	Get(ctx context.Context, id int64) (*dto.Experience, error)
	Create(ctx context.Context, in dto.Experience) (*dto.Experience, error)
	Update(ctx context.Context, id int64, in dto.Experience) (*dto.Experience, error)
	Delete(ctx context.Context, id int64) error
}

type ExperienceHandler struct {
	service ExperienceService
	logger  *slog.Logger
}

func NewExperienceHandler(svc ExperienceService, logger *slog.Logger) *ExperienceHandler {
	return &ExperienceHandler{service: svc, logger: logger}
}

func (h *ExperienceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	experiences, err := h.service.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, experiences)
}

// HandleListCurrent handles GET /api/public/experiences/current.
func (h *ExperienceHandler) HandleListCurrent(w http.ResponseWriter, r *http.Request) {
	experiences, err := h.service.ListCurrent(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, experiences)
}

func (h *ExperienceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	experience, err := h.service.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, experience)
}

func (h *ExperienceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in dto.Experience
	if err := decodeJSON(r, &in); err != nil {
		h.logger.Warn("invalid experience JSON", slog.String("error", err.Error()))
		WriteError(w, r, err)
		return
	}

	experience, err := h.service.Create(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, experience)
}

func (h *ExperienceHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var in dto.Experience
	if err := decodeJSON(r, &in); err != nil {
		h.logger.Warn("invalid experience JSON", slog.String("error", err.Error()))
		WriteError(w, r, err)
		return
	}

	experience, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, experience)
}

func (h *ExperienceHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
