package dto

import "github.com/paul-ayesiga/portfolio-service/internal/model"

type UserProfile struct {
	ID              int64          `json:"id"`
	FullName        string         `json:"fullName" validate:"notblank,max=255"`
	Username        string         `json:"username" validate:"notblank,max=255"`
	Bio             string         `json:"bio" validate:"max=1000"`
	Title           string         `json:"title"`
	Location        string         `json:"location"`
	Email           string         `json:"email" validate:"omitempty,email"`
	GithubURL       string         `json:"githubUrl"`
	LinkedinURL     string         `json:"linkedinUrl"`
	TwitterURL      string         `json:"twitterUrl"`
	WebsiteURL      string         `json:"websiteUrl"`
	ResumeURL       string         `json:"resumeUrl" validate:"max=1000"`
	ProfileImageURL string         `json:"profileImageUrl" validate:"max=2000"`
	CreatedAt       *LocalDateTime `json:"createdAt,omitempty"`
	UpdatedAt       *LocalDateTime `json:"updatedAt,omitempty"`
}

func UserProfileFromModel(p *model.UserProfile) UserProfile {
	return UserProfile{
		ID:              p.ID,
		FullName:        p.FullName,
		Username:        p.Username,
		Bio:             p.Bio,
		Title:           p.Title,
		Location:        p.Location,
		Email:           p.Email,
		GithubURL:       p.GithubURL,
		LinkedinURL:     p.LinkedinURL,
		TwitterURL:      p.TwitterURL,
		WebsiteURL:      p.WebsiteURL,
		ResumeURL:       p.ResumeURL,
		ProfileImageURL: p.ProfileImageURL,
		CreatedAt:       timestamp(p.CreatedAt),
		UpdatedAt:       timestamp(p.UpdatedAt),
	}
}

func (d UserProfile) ToModel() *model.UserProfile {
	return &model.UserProfile{
		FullName:        d.FullName,
		Username:        d.Username,
		Bio:             d.Bio,
		Title:           d.Title,
		Location:        d.Location,
		Email:           d.Email,
		GithubURL:       d.GithubURL,
		LinkedinURL:     d.LinkedinURL,
		TwitterURL:      d.TwitterURL,
		WebsiteURL:      d.WebsiteURL,
		ResumeURL:       d.ResumeURL,
		ProfileImageURL: d.ProfileImageURL,
	}
}
