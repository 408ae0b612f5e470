// Package repository declares the persistence contracts used by the service
// layer. Implementations live in sub-packages (see sqlstore).
//
// Every method returns an *apperror.AppError wrapping apperror.ErrNotFound
// when the addressed row does not exist. Writes either fully apply or leave
// the store untouched.
package repository

import (
	"context"

	"github.com/paul-ayesiga/portfolio-service/internal/model"
)

type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	ListFeaturedProjects(ctx context.Context) ([]model.Project, error)
	ListProjectsByCategory(ctx context.Context, category string) ([]model.Project, error)
	ListProjectsByTechnology(ctx context.Context, technology string) ([]model.Project, error)
	GetProject(ctx context.Context, id int64) (*model.Project, error)
	CreateProject(ctx context.Context, p *model.Project) error
	UpdateProject(ctx context.Context, p *model.Project) error
	DeleteProject(ctx context.Context, id int64) error
}

type SkillRepository interface {
	ListSkills(ctx context.Context) ([]model.Skill, error)
	ListSkillsByCategory(ctx context.Context, category string) ([]model.Skill, error)
	// ListSkillsByMinProficiency returns skills whose proficiency is >= level.
	// Skills without a proficiency never match.
	ListSkillsByMinProficiency(ctx context.Context, level int) ([]model.Skill, error)
	GetSkill(ctx context.Context, id int64) (*model.Skill, error)
	CreateSkill(ctx context.Context, s *model.Skill) error
	UpdateSkill(ctx context.Context, s *model.Skill) error
	DeleteSkill(ctx context.Context, id int64) error
}

type ExperienceRepository interface {
	// ListExperiences orders by start date, most recent first.
	ListExperiences(ctx context.Context) ([]model.Experience, error)
	ListCurrentExperiences(ctx context.Context) ([]model.Experience, error)
	GetExperience(ctx context.Context, id int64) (*model.Experience, error)
	CreateExperience(ctx context.Context, e *model.Experience) error
	UpdateExperience(ctx context.Context, e *model.Experience) error
	DeleteExperience(ctx context.Context, id int64) error
}

type ProfileRepository interface {
	ListProfiles(ctx context.Context) ([]model.UserProfile, error)
	GetProfile(ctx context.Context, id int64) (*model.UserProfile, error)
	GetProfileByUsername(ctx context.Context, username string) (*model.UserProfile, error)
	// CreateProfile returns apperror.ErrConflict when the username is taken.
	CreateProfile(ctx context.Context, p *model.UserProfile) error
	UpdateProfile(ctx context.Context, p *model.UserProfile) error
	DeleteProfile(ctx context.Context, id int64) error
}
