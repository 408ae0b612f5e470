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

var _ repository.ProjectRepository = (*DB)(nil)

const projectColumns = `p.id, p.title, p.description, p.summary, p.github_url, p.live_url, p.image_url,
	p.start_date, p.end_date, p.featured, p.created_at, p.updated_at`

func scanProject(s interface{ Scan(...any) error }, p *model.Project) error {
	var start, end sql.NullTime
	if err := s.Scan(
		&p.ID, &p.Title, &p.Description, &p.Summary, &p.GithubURL, &p.LiveURL, &p.ImageURL,
		&start, &end, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return err
	}
	p.StartDate = timePtr(start)
	p.EndDate = timePtr(end)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return nil
}

func (db *DB) ListProjects(ctx context.Context) ([]model.Project, error) {
	return db.queryProjects(ctx, `SELECT `+projectColumns+` FROM projects p ORDER BY p.id`)
}

func (db *DB) ListFeaturedProjects(ctx context.Context) ([]model.Project, error) {
	return db.queryProjects(ctx, `SELECT `+projectColumns+` FROM projects p WHERE p.featured = ? ORDER BY p.id`, true)
}

func (db *DB) ListProjectsByCategory(ctx context.Context, category string) ([]model.Project, error) {
	return db.queryProjects(ctx,
		`SELECT `+projectColumns+`
		 FROM projects p
		 JOIN project_categories c ON c.project_id = p.id
		 WHERE c.category = ?
		 ORDER BY p.id`,
		category,
	)
}

func (db *DB) ListProjectsByTechnology(ctx context.Context, technology string) ([]model.Project, error) {
	return db.queryProjects(ctx,
		`SELECT `+projectColumns+`
		 FROM projects p
		 JOIN project_technologies t ON t.project_id = p.id
		 WHERE t.technology = ?
		 ORDER BY p.id`,
		technology,
	)
}

// queryProjects runs a SELECT over projects and attaches both collections.
func (db *DB) queryProjects(ctx context.Context, query string, args ...any) ([]model.Project, error) {
	rows, err := db.conn.QueryContext(ctx, db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing projects: %w", err)
	}

	projects := make([]model.Project, 0)
	for rows.Next() {
		var p model.Project
		if err := scanProject(rows, &p); err != nil {
			rows.Close()
			return nil, fmt.Errorf("sqlstore: scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("sqlstore: iterating projects: %w", err)
	}
	rows.Close()

	if err := db.attachProjectCollections(ctx, db.conn, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (db *DB) attachProjectCollections(ctx context.Context, q querier, projects []model.Project) error {
	ids := make([]int64, len(projects))
	for i := range projects {
		ids[i] = projects[i].ID
	}

	techs, err := db.load(ctx, q, projectTechnologies, ids)
	if err != nil {
		return err
	}
	cats, err := db.load(ctx, q, projectCategories, ids)
	if err != nil {
		return err
	}

	for i := range projects {
		projects[i].Technologies = valuesOf(techs, projects[i].ID)
		projects[i].Categories = valuesOf(cats, projects[i].ID)
	}
	return nil
}

func (db *DB) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	err := scanProject(db.conn.QueryRowContext(ctx,
		db.rebind(`SELECT `+projectColumns+` FROM projects p WHERE p.id = ?`), id), &p)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Project", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlstore: getting project %d: %w", id, err)
	}

	one := []model.Project{p}
	if err := db.attachProjectCollections(ctx, db.conn, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// CreateProject inserts p and its collections in one transaction and sets
// p.ID. The caller assigns the timestamps.
func (db *DB) CreateProject(ctx context.Context, p *model.Project) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, db.rebind(
			`INSERT INTO projects (title, description, summary, github_url, live_url, image_url,
			                       start_date, end_date, featured, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 RETURNING id`),
			p.Title, p.Description, p.Summary, p.GithubURL, p.LiveURL, p.ImageURL,
			nullTime(p.StartDate), nullTime(p.EndDate), p.Featured, p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("sqlstore: creating project: %w", err)
		}

		if err := db.replace(ctx, tx, projectTechnologies, id, p.Technologies); err != nil {
			return err
		}
		if err := db.replace(ctx, tx, projectCategories, id, p.Categories); err != nil {
			return err
		}

		p.ID = id
		return nil
	})
}

// UpdateProject overwrites every mutable column of p.ID and replaces both
// collections. created_at is never rewritten.
func (db *DB) UpdateProject(ctx context.Context, p *model.Project) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, db.rebind(
			`UPDATE projects
			 SET title = ?, description = ?, summary = ?, github_url = ?, live_url = ?, image_url = ?,
			     start_date = ?, end_date = ?, featured = ?, updated_at = ?
			 WHERE id = ?`),
			p.Title, p.Description, p.Summary, p.GithubURL, p.LiveURL, p.ImageURL,
			nullTime(p.StartDate), nullTime(p.EndDate), p.Featured, p.UpdatedAt.UTC(), p.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlstore: updating project %d: %w", p.ID, err)
		}
		if err := affectedOne(res, apperror.NotFound("Project", strconv.FormatInt(p.ID, 10))); err != nil {
			return err
		}

		if err := db.replace(ctx, tx, projectTechnologies, p.ID, p.Technologies); err != nil {
			return err
		}
		return db.replace(ctx, tx, projectCategories, p.ID, p.Categories)
	})
}

func (db *DB) DeleteProject(ctx context.Context, id int64) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := db.clear(ctx, tx, projectTechnologies, id); err != nil {
			return err
		}
		if err := db.clear(ctx, tx, projectCategories, id); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, db.rebind(`DELETE FROM projects WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("sqlstore: deleting project %d: %w", id, err)
		}
		return affectedOne(res, apperror.NotFound("Project", strconv.FormatInt(id, 10)))
	})
}
