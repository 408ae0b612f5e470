package model

import "time"

// UserProfile is the public profile of a portfolio owner. Username is unique
// across all profiles.
type UserProfile struct {
	ID              int64
	FullName        string
	Username        string
	Bio             string
	Title           string
	Location        string
	Email           string
	GithubURL       string
	LinkedinURL     string
	TwitterURL      string
	WebsiteURL      string
	ResumeURL       string
	ProfileImageURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
