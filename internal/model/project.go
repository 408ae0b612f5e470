// Package model defines the persisted entities.
//
// Each entity is an independent aggregate with a server-generated integer id.
// Collection fields (Technologies, Categories, ...) live in side tables keyed
// by the owner's id; the repository loads them eagerly.
package model

import "time"

// Project is a portfolio project.
type Project struct {
	ID           int64
	Title        string
	Description  string
	Summary      string
	GithubURL    string
	LiveURL      string
	ImageURL     string
	StartDate    *time.Time
	EndDate      *time.Time
	Featured     bool
	Technologies []string
	Categories   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
