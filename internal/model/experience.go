package model

import "time"

// Experience is a position held at a company.
type Experience struct {
	ID               int64
	Company          string
	Position         string
	Description      string
	Location         string
	StartDate        *time.Time
	EndDate          *time.Time
	Current          bool
	CompanyLogoURL   string
	Responsibilities []string
	Technologies     []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
