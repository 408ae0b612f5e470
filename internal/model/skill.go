package model

import "time"

// Skill is a single skill entry. ProficiencyLevel and YearsOfExperience are
// optional.
type Skill struct {
	ID                int64
	Name              string
	Category          string
	ProficiencyLevel  *int
	IconURL           string
	YearsOfExperience *int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
