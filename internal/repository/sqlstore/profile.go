package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/paul-ayesiga/portfolio-service/internal/apperror"
	"github.com/paul-ayesiga/portfolio-service/internal/model"
	"github.com/paul-ayesiga/portfolio-service/internal/repository"
)

var _ repository.ProfileRepository = (*DB)(nil)

const profileColumns = `id, full_name, username, bio, title, location, email, github_url, linkedin_url,
	twitter_url, website_url, resume_url, profile_image_url, created_at, updated_at`

func scanProfile(s interface{ Scan(...any) error }, p *model.UserProfile) error {
	if err := s.Scan(
		&p.ID, &p.FullName, &p.Username, &p.Bio, &p.Title, &p.Location, &p.Email, &p.GithubURL,
		&p.LinkedinURL, &p.TwitterURL, &p.WebsiteURL, &p.ResumeURL, &p.ProfileImageURL,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return nil
}

func (db *DB) ListProfiles(ctx context.Context) ([]model.UserProfile, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+profileColumns+` FROM user_profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing user profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]model.UserProfile, 0)
	for rows.Next() {
		var p model.UserProfile
		if err := scanProfile(rows, &p); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning user profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating user profiles: %w", err)
	}
	return profiles, nil
}

func (db *DB) GetProfile(ctx context.Context, id int64) (*model.UserProfile, error) {
	var p model.UserProfile
	err := scanProfile(db.conn.QueryRowContext(ctx,
		db.rebind(`SELECT `+profileColumns+` FROM user_profiles WHERE id = ?`), id), &p)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("User profile", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlstore: getting user profile %d: %w", id, err)
	}
	return &p, nil
}

func (db *DB) GetProfileByUsername(ctx context.Context, username string) (*model.UserProfile, error) {
	var p model.UserProfile
	err := scanProfile(db.conn.QueryRowContext(ctx,
		db.rebind(`SELECT `+profileColumns+` FROM user_profiles WHERE username = ?`), username), &p)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFoundBy("User profile", "username", username)
		}
		return nil, fmt.Errorf("sqlstore: getting user profile %q: %w", username, err)
	}
	return &p, nil
}

// CreateProfile relies on the UNIQUE constraint on username rather than a
// read-then-insert, so concurrent creates cannot both succeed.
func (db *DB) CreateProfile(ctx context.Context, p *model.UserProfile) error {
	err := db.conn.QueryRowContext(ctx, db.rebind(
		`INSERT INTO user_profiles (full_name, username, bio, title, location, email, github_url,
		                            linkedin_url, twitter_url, website_url, resume_url, profile_image_url,
		                            created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`),
		p.FullName, p.Username, p.Bio, p.Title, p.Location, p.Email, p.GithubURL,
		p.LinkedinURL, p.TwitterURL, p.WebsiteURL, p.ResumeURL, p.ProfileImageURL,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("User profile", p.Username)
		}
		return fmt.Errorf("sqlstore: creating user profile: %w", err)
	}
	return nil
}

// UpdateProfile never changes the username.
func (db *DB) UpdateProfile(ctx context.Context, p *model.UserProfile) error {
	res, err := db.conn.ExecContext(ctx, db.rebind(
		`UPDATE user_profiles
		 SET full_name = ?, bio = ?, title = ?, location = ?, email = ?, github_url = ?, linkedin_url = ?,
		     twitter_url = ?, website_url = ?, resume_url = ?, profile_image_url = ?, updated_at = ?
		 WHERE id = ?`),
		p.FullName, p.Bio, p.Title, p.Location, p.Email, p.GithubURL, p.LinkedinURL,
		p.TwitterURL, p.WebsiteURL, p.ResumeURL, p.ProfileImageURL, p.UpdatedAt.UTC(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: updating user profile %d: %w", p.ID, err)
	}
	return affectedOne(res, apperror.NotFound("User profile", strconv.FormatInt(p.ID, 10)))
}

func (db *DB) DeleteProfile(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, db.rebind(`DELETE FROM user_profiles WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("sqlstore: deleting user profile %d: %w", id, err)
	}
	return affectedOne(res, apperror.NotFound("User profile", strconv.FormatInt(id, 10)))
}
