package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paul-ayesiga/portfolio-service/internal/dto"
)

// ProjectService is what ProjectHandler needs from the service layer.
// *service.ProjectService implements it.
type ProjectService interface {
	List(ctx context.Context) ([]dto.Project, error)
	ListFeatured(ctx context.Context) ([]dto.Project, error)
	ListByCategory(ctx context.Context, category string) ([]dto.Project, error)
	ListByTechnology(ctx context.Context, technology string) ([]dto.Project, error)
	Get(ctx context.Context, id int64) (*dto.Project, error)
	Create(ctx context.Context, in dto.Project) (*dto.Project, error)
	Update(ctx context.Context, id int64, in dto.Project) (*dto.Project, error)
	Delete(ctx context.Context, id int64) error
}

// ProjectHandler serves the public project reads and the admin writes.
type ProjectHandler struct {
	service ProjectService
	logger  *slog.Logger
}

func NewProjectHandler(svc ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{service: svc, logger: logger}
}

// HandleList handles GET /api/public/projects.
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleListFeatured handles GET /api/public/projects/featured.
func (h *ProjectHandler) HandleListFeatured(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.ListFeatured(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleListByCategory handles GET /api/public/projects/category/{category}.
func (h *ProjectHandler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleListByTechnology handles GET /api/public/projects/technology/{technology}.
func (h *ProjectHandler) HandleListByTechnology(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.ListByTechnology(r.Context(), chi.URLParam(r, "technology"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleGet handles GET /api/public/projects/{id}.
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// HandleCreate handles POST /api/admin/projects.
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in dto.Project
	if err := decodeJSON(r, &in); err != nil {
		h.logger.Warn("invalid project JSON", slog.String("error", err.Error()))
		WriteError(w, r, err)
		return
	}

	project, err := h.service.Create(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// HandleUpdate handles PUT /api/admin/projects/{id}.
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var in dto.Project
	if err := decodeJSON(r, &in); err != nil {
		h.logger.Warn("invalid project JSON", slog.String("error", err.Error()))
		WriteError(w, r, err)
		return
	}

	project, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// HandleDelete handles DELETE /api/admin/projects/{id}.
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
