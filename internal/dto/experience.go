package dto

import "github.com/paul-ayesiga/portfolio-service/internal/model"

type Experience struct {
	ID               int64          `json:"id"`
	Company          string         `json:"company" validate:"notblank,max=255"`
	Position         string         `json:"position" validate:"notblank,max=255"`
	Description      string         `json:"description" validate:"max=2000"`
	Location         string         `json:"location"`
	StartDate        *LocalDateTime `json:"startDate"`
	EndDate          *LocalDateTime `json:"endDate"`
	Current          bool           `json:"current"`
	CompanyLogoURL   string         `json:"companyLogoUrl" validate:"max=1000"`
	Responsibilities []string       `json:"responsibilities"`
	Technologies     []string       `json:"technologies"`
	CreatedAt        *LocalDateTime `json:"createdAt,omitempty"`
	UpdatedAt        *LocalDateTime `json:"updatedAt,omitempty"`
}

func ExperienceFromModel(e *model.Experience) Experience {
	return Experience{
		ID:               e.ID,
		Company:          e.Company,
		Position:         e.Position,
		Description:      e.Description,
		Location:         e.Location,
		StartDate:        NewLocalDateTime(e.StartDate),
		EndDate:          NewLocalDateTime(e.EndDate),
		Current:          e.Current,
		CompanyLogoURL:   e.CompanyLogoURL,
		Responsibilities: normalizeSet(e.Responsibilities),
		Technologies:     normalizeSet(e.Technologies),
		CreatedAt:        timestamp(e.CreatedAt),
		UpdatedAt:        timestamp(e.UpdatedAt),
	}
}

func (d Experience) ToModel() *model.Experience {
	return &model.Experience{
		Company:          d.Company,
		Position:         d.Position,
		Description:      d.Description,
		Location:         d.Location,
		StartDate:        d.StartDate.TimePtr(),
		EndDate:          d.EndDate.TimePtr(),
		Current:          d.Current,
		CompanyLogoURL:   d.CompanyLogoURL,
		Responsibilities: normalizeSet(d.Responsibilities),
		Technologies:     normalizeSet(d.Technologies),
	}
}
