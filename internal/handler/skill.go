package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paul-ayesiga/portfolio-service/internal/dto"
)

type SkillService interface {
	List(ctx context.Context) ([]dto.Skill, error)
	ListByCategory(ctx context.Context, category string) ([]dto.Skill, error)
	ListByMinProficiency(ctx context.Context, level int) ([]dto.Skill, error)
	Get(ctx context.Context, id int64) (*dto.Skill, error)
	Create(ctx context.Context, in dto.Skill) (*dto.Skill, error)
	Update(ctx context.Context, id int64, in dto.Skill) (*dto.Skill, error)
	Delete(ctx context.Context, id int64) error
}

type SkillHandler struct {
	service SkillService
	logger  *slog.Logger
}

func NewSkillHandler(svc SkillService, logger *slog.Logger) *SkillHandler {
	return &SkillHandler{service: svc, logger: logger}
}

func (h *SkillHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skills, err := h.service.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (h *SkillHandler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	skills, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

// HandleListByLevel handles GET /api/public/skills/level/{level}: skills at
// or above the given proficiency.
func (h *SkillHandler) HandleListByLevel(w http.ResponseWriter, r *http.Request) {
	level, err := intParam(r, "level")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	skills, err := h.service.ListByMinProficiency(r.Context(), level)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (h *SkillHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	skill, err := h.service.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

func (h *SkillHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in dto.Skill
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, r, err)
		return
	}

	skill, err := h.service.Create(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, skill)
}

func (h *SkillHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var in dto.Skill
	if err := decodeJSON(r, &in); err != nil {
		WriteError(w, r, err)
		return
	}

	skill, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

func (h *SkillHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
