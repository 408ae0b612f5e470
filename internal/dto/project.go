package dto

import (
	"time"

	"github.com/paul-ayesiga/portfolio-service/internal/model"
)

// Project is the wire representation of model.Project.
type Project struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title" validate:"notblank,max=255"`
	Description  string         `json:"description" validate:"max=2000"`
	Summary      string         `json:"summary" validate:"max=1000"`
	GithubURL    string         `json:"githubUrl"`
	LiveURL      string         `json:"liveUrl"`
	ImageURL     string         `json:"imageUrl" validate:"max=2000"`
	StartDate    *LocalDateTime `json:"startDate"`
	EndDate      *LocalDateTime `json:"endDate"`
	Featured     bool           `json:"featured"`
	Technologies []string       `json:"technologies"`
	Categories   []string       `json:"categories"`
	CreatedAt    *LocalDateTime `json:"createdAt,omitempty"`
	UpdatedAt    *LocalDateTime `json:"updatedAt,omitempty"`
}

func ProjectFromModel(p *model.Project) Project {
	return Project{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Summary:      p.Summary,
		GithubURL:    p.GithubURL,
		LiveURL:      p.LiveURL,
		ImageURL:     p.ImageURL,
		StartDate:    NewLocalDateTime(p.StartDate),
		EndDate:      NewLocalDateTime(p.EndDate),
		Featured:     p.Featured,
		Technologies: normalizeSet(p.Technologies),
		Categories:   normalizeSet(p.Categories),
		CreatedAt:    timestamp(p.CreatedAt),
		UpdatedAt:    timestamp(p.UpdatedAt),
	}
}

// ToModel maps the mutable fields. Id and timestamps are left for the caller.
func (d Project) ToModel() *model.Project {
	return &model.Project{
		Title:        d.Title,
		Description:  d.Description,
		Summary:      d.Summary,
		GithubURL:    d.GithubURL,
		LiveURL:      d.LiveURL,
		ImageURL:     d.ImageURL,
		StartDate:    d.StartDate.TimePtr(),
		EndDate:      d.EndDate.TimePtr(),
		Featured:     d.Featured,
		Technologies: normalizeSet(d.Technologies),
		Categories:   normalizeSet(d.Categories),
	}
}

func timestamp(t time.Time) *LocalDateTime {
	if t.IsZero() {
		return nil
	}
	return &LocalDateTime{Time: t.UTC()}
}
