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

var _ repository.ExperienceRepository = (*DB)(nil)

const experienceColumns = `id, company, position, description, location, start_date, end_date,
	is_current, company_logo_url, created_at, updated_at`

// Most recent first. Rows without a start date sort last in both dialects.
const experienceOrder = ` ORDER BY CASE WHEN start_date IS NULL THEN 1 ELSE 0 END, start_date DESC, id DESC`

func scanExperience(s interface{ Scan(...any) error }, e *model.Experience) error {
	var start, end sql.NullTime
	if err := s.Scan(
		&e.ID, &e.Company, &e.Position, &e.Description, &e.Location, &start, &end,
		&e.Current, &e.CompanyLogoURL, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return err
	}
	e.StartDate = timePtr(start)
	e.EndDate = timePtr(end)
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return nil
}

func (db *DB) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	return db.queryExperiences(ctx, `SELECT `+experienceColumns+` FROM experiences`+experienceOrder)
}

func (db *DB) ListCurrentExperiences(ctx context.Context) ([]model.Experience, error) {
	return db.queryExperiences(ctx,
		`SELECT `+experienceColumns+` FROM experiences WHERE is_current = ?`+experienceOrder, true)
}

func (db *DB) queryExperiences(ctx context.Context, query string, args ...any) ([]model.Experience, error) {
	rows, err := db.conn.QueryContext(ctx, db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing experiences: %w", err)
	}

	experiences := make([]model.Experience, 0)
	for rows.Next() {
		var e model.Experience
		if err := scanExperience(rows, &e); err != nil {
			rows.Close()
			return nil, fmt.Errorf("sqlstore: scanning experience row: %w", err)
		}
		experiences = append(experiences, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("sqlstore: iterating experiences: %w", err)
	}
	rows.Close()

	if err := db.attachExperienceCollections(ctx, db.conn, experiences); err != nil {
		return nil, err
	}
	return experiences, nil
}

func (db *DB) attachExperienceCollections(ctx context.Context, q querier, experiences []model.Experience) error {
	ids := make([]int64, len(experiences))
	for i := range experiences {
		ids[i] = experiences[i].ID
	}

	resp, err := db.load(ctx, q, experienceResponsibilities, ids)
	if err != nil {
		return err
	}
	techs, err := db.load(ctx, q, experienceTechnologies, ids)
	if err != nil {
		return err
	}

	for i := range experiences {
		experiences[i].Responsibilities = valuesOf(resp, experiences[i].ID)
		experiences[i].Technologies = valuesOf(techs, experiences[i].ID)
	}
	return nil
}

func (db *DB) GetExperience(ctx context.Context, id int64) (*model.Experience, error) {
	var e model.Experience
	err := scanExperience(db.conn.QueryRowContext(ctx,
		db.rebind(`SELECT `+experienceColumns+` FROM experiences WHERE id = ?`), id), &e)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Experience", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlstore: getting experience %d: %w", id, err)
	}

	one := []model.Experience{e}
	if err := db.attachExperienceCollections(ctx, db.conn, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (db *DB) CreateExperience(ctx context.Context, e *model.Experience) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, db.rebind(
			`INSERT INTO experiences (company, position, description, location, start_date, end_date,
			                          is_current, company_logo_url, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 RETURNING id`),
			e.Company, e.Position, e.Description, e.Location, nullTime(e.StartDate), nullTime(e.EndDate),
			e.Current, e.CompanyLogoURL, e.CreatedAt.UTC(), e.UpdatedAt.UTC(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("sqlstore: creating experience: %w", err)
		}

		if err := db.replace(ctx, tx, experienceResponsibilities, id, e.Responsibilities); err != nil {
			return err
		}
		if err := db.replace(ctx, tx, experienceTechnologies, id, e.Technologies); err != nil {
			return err
		}

		e.ID = id
		return nil
	})
}

func (db *DB) UpdateExperience(ctx context.Context, e *model.Experience) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, db.rebind(
			`UPDATE experiences
			 SET company = ?, position = ?, description = ?, location = ?, start_date = ?, end_date = ?,
			     is_current = ?, company_logo_url = ?, updated_at = ?
			 WHERE id = ?`),
			e.Company, e.Position, e.Description, e.Location, nullTime(e.StartDate), nullTime(e.EndDate),
			e.Current, e.CompanyLogoURL, e.UpdatedAt.UTC(), e.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlstore: updating experience %d: %w", e.ID, err)
		}
		if err := affectedOne(res, apperror.NotFound("Experience", strconv.FormatInt(e.ID, 10))); err != nil {
			return err
		}

		if err := db.replace(ctx, tx, experienceResponsibilities, e.ID, e.Responsibilities); err != nil {
			return err
		}
		return db.replace(ctx, tx, experienceTechnologies, e.ID, e.Technologies)
	})
}

func (db *DB) DeleteExperience(ctx context.Context, id int64) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := db.clear(ctx, tx, experienceResponsibilities, id); err != nil {
			return err
		}
		if err := db.clear(ctx, tx, experienceTechnologies, id); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, db.rebind(`DELETE FROM experiences WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("sqlstore: deleting experience %d: %w", id, err)
		}
		return affectedOne(res, apperror.NotFound("Experience", strconv.FormatInt(id, 10)))
	})
}
