package sqlstore

import (
	"context"
	"fmt"
	"strings"
)

// schema is written once with three markers that differ between dialects:
//
//	%ID%   auto-incrementing integer primary key
//	%REF%  integer column referencing an id
//	%TS%   timestamp column
//
// CREATE ... IF NOT EXISTS keeps every statement idempotent, so migrate runs
// on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          %ID%,
		title       VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		summary     TEXT NOT NULL DEFAULT '',
		github_url  TEXT NOT NULL DEFAULT '',
		live_url    TEXT NOT NULL DEFAULT '',
		image_url   TEXT NOT NULL DEFAULT '',
		start_date  %TS%,
		end_date    %TS%,
		featured    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  %TS% NOT NULL,
		updated_at  %TS% NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_featured ON projects(featured)`,
	`CREATE TABLE IF NOT EXISTS project_technologies (
		project_id %REF% NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		technology VARCHAR(255) NOT NULL,
		PRIMARY KEY (project_id, technology)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_project_technologies_value ON project_technologies(technology)`,
	`CREATE TABLE IF NOT EXISTS project_categories (
		project_id %REF% NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		category   VARCHAR(255) NOT NULL,
		PRIMARY KEY (project_id, category)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_project_categories_value ON project_categories(category)`,

	`CREATE TABLE IF NOT EXISTS skills (
		id                  %ID%,
		name                VARCHAR(255) NOT NULL,
		category            VARCHAR(255) NOT NULL,
		proficiency_level   INTEGER,
		icon_url            TEXT NOT NULL DEFAULT '',
		years_of_experience INTEGER,
		created_at          %TS% NOT NULL,
		updated_at          %TS% NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_skills_category ON skills(category)`,

	`CREATE TABLE IF NOT EXISTS experiences (
		id               %ID%,
		company          VARCHAR(255) NOT NULL,
		position         VARCHAR(255) NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		location         TEXT NOT NULL DEFAULT '',
		start_date       %TS%,
		end_date         %TS%,
		is_current       BOOLEAN NOT NULL DEFAULT FALSE,
		company_logo_url TEXT NOT NULL DEFAULT '',
		created_at       %TS% NOT NULL,
		updated_at       %TS% NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS experience_responsibilities (
		experience_id  %REF% NOT NULL REFERENCES experiences(id) ON DELETE CASCADE,
		responsibility TEXT NOT NULL,
		PRIMARY KEY (experience_id, responsibility)
	)`,
	`CREATE TABLE IF NOT EXISTS experience_technologies (
		experience_id %REF% NOT NULL REFERENCES experiences(id) ON DELETE CASCADE,
		technology    VARCHAR(255) NOT NULL,
		PRIMARY KEY (experience_id, technology)
	)`,

	`CREATE TABLE IF NOT EXISTS user_profiles (
		id                %ID%,
		full_name         VARCHAR(255) NOT NULL,
		username          VARCHAR(255) NOT NULL UNIQUE,
		bio               TEXT NOT NULL DEFAULT '',
		title             TEXT NOT NULL DEFAULT '',
		location          TEXT NOT NULL DEFAULT '',
		email             TEXT NOT NULL DEFAULT '',
		github_url        TEXT NOT NULL DEFAULT '',
		linkedin_url      TEXT NOT NULL DEFAULT '',
		twitter_url       TEXT NOT NULL DEFAULT '',
		website_url       TEXT NOT NULL DEFAULT '',
		resume_url        TEXT NOT NULL DEFAULT '',
		profile_image_url TEXT NOT NULL DEFAULT '',
		created_at        %TS% NOT NULL,
		updated_at        %TS% NOT NULL
	)`,
}

func (db *DB) migrate(ctx context.Context) error {
	var r *strings.Replacer
	switch db.dialect {
	case DialectPostgres:
		r = strings.NewReplacer("%ID%", "BIGSERIAL PRIMARY KEY", "%REF%", "BIGINT", "%TS%", "TIMESTAMPTZ")
	default:
		r = strings.NewReplacer("%ID%", "INTEGER PRIMARY KEY AUTOINCREMENT", "%REF%", "INTEGER", "%TS%", "DATETIME")
	}

	// One statement per Exec: the pgx driver only accepts multi-statement
	// strings over the simple protocol.
	for i, stmt := range schema {
		if _, err := db.conn.ExecContext(ctx, r.Replace(stmt)); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
