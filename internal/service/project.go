package service

import (
	"context"
	"log/slog"

	"github.com/paul-ayesiga/portfolio-service/internal/cache"
	"github.com/paul-ayesiga/portfolio-service/internal/dto"
	"github.com/paul-ayesiga/portfolio-service/internal/model"
	"github.com/paul-ayesiga/portfolio-service/internal/repository"
	"github.com/paul-ayesiga/portfolio-service/internal/validation"
)

// Cache namespaces for projects.
const (
	nsProjects         = "projects"
	nsFeaturedProjects = "featuredProjects"
	nsProject          = "project"
)

var projectNamespaces = []string{nsProjects, nsFeaturedProjects, nsProject}

type ProjectService struct {
	repo     repository.ProjectRepository
	cache    cache.Cache
	validate *validation.Validator
	logger   *slog.Logger
	now      clock
}

func NewProjectService(repo repository.ProjectRepository, c cache.Cache, v *validation.Validator, logger *slog.Logger) *ProjectService {
	return &ProjectService{repo: repo, cache: c, validate: v, logger: logger, now: systemClock}
}

func (s *ProjectService) List(ctx context.Context) ([]dto.Project, error) {
	return readThrough(ctx, s.cache, s.logger, nsProjects, allKey, func(ctx context.Context) ([]dto.Project, error) {
		return projectDTOs(s.repo.ListProjects(ctx))
	})
}

func (s *ProjectService) ListFeatured(ctx context.Context) ([]dto.Project, error) {
	return readThrough(ctx, s.cache, s.logger, nsFeaturedProjects, allKey, func(ctx context.Context) ([]dto.Project, error) {
		return projectDTOs(s.repo.ListFeaturedProjects(ctx))
	})
}

func (s *ProjectService) ListByCategory(ctx context.Context, category string) ([]dto.Project, error) {
	return projectDTOs(s.repo.ListProjectsByCategory(ctx, category))
}

func (s *ProjectService) ListByTechnology(ctx context.Context, technology string) ([]dto.Project, error) {
	return projectDTOs(s.repo.ListProjectsByTechnology(ctx, technology))
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*dto.Project, error) {
	p, err := readThrough(ctx, s.cache, s.logger, nsProject, idKey(id), func(ctx context.Context) (dto.Project, error) {
		m, err := s.repo.GetProject(ctx, id)
		if err != nil {
			return dto.Project{}, err
		}
		return dto.ProjectFromModel(m), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProjectService) Create(ctx context.Context, in dto.Project) (*dto.Project, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	m := in.ToModel()
	now := s.now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.repo.CreateProject(ctx, m); err != nil {
		s.logger.Error("failed to create project", slog.String("error", err.Error()))
		return nil, err
	}
	evict(ctx, s.cache, s.logger, projectNamespaces...)

	s.logger.Info("project created", slog.Int64("id", m.ID), slog.String("title", m.Title))
	out := dto.ProjectFromModel(m)
	return &out, nil
}

// Update replaces every field of project id, collections included.
func (s *ProjectService) Update(ctx context.Context, id int64, in dto.Project) (*dto.Project, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	m := in.ToModel()
	m.ID = id
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = s.now()

	if err := s.repo.UpdateProject(ctx, m); err != nil {
		s.logger.Error("failed to update project", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, err
	}
	evict(ctx, s.cache, s.logger, projectNamespaces...)

	s.logger.Info("project updated", slog.Int64("id", id))
	out := dto.ProjectFromModel(m)
	return &out, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return err
	}
	evict(ctx, s.cache, s.logger, projectNamespaces...)

	s.logger.Info("project deleted", slog.Int64("id", id))
	return nil
}

func projectDTOs(projects []model.Project, err error) ([]dto.Project, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.Project, len(projects))
	for i := range projects {
		out[i] = dto.ProjectFromModel(&projects[i])
	}
	return out, nil
}
