package dto

import "github.com/paul-ayesiga/portfolio-service/internal/model"

type Skill struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name" validate:"notblank,max=255"`
	Category          string         `json:"category"`
	ProficiencyLevel  *int           `json:"proficiencyLevel"`
	IconURL           string         `json:"iconUrl" validate:"max=1000"`
	YearsOfExperience *int           `json:"yearsOfExperience" validate:"omitempty,min=0"`
	CreatedAt         *LocalDateTime `json:"createdAt,omitempty"`
	UpdatedAt         *LocalDateTime `json:"updatedAt,omitempty"`
}

func SkillFromModel(s *model.Skill) Skill {
	return Skill{
		ID:                s.ID,
		Name:              s.Name,
		Category:          s.Category,
		ProficiencyLevel:  copyInt(s.ProficiencyLevel),
		IconURL:           s.IconURL,
		YearsOfExperience: copyInt(s.YearsOfExperience),
		CreatedAt:         timestamp(s.CreatedAt),
		UpdatedAt:         timestamp(s.UpdatedAt),
	}
}

func (d Skill) ToModel() *model.Skill {
	return &model.Skill{
		Name:              d.Name,
		Category:          d.Category,
		ProficiencyLevel:  copyInt(d.ProficiencyLevel),
		IconURL:           d.IconURL,
		YearsOfExperience: copyInt(d.YearsOfExperience),
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
