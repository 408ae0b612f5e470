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

var _ repository.SkillRepository = (*DB)(nil)

const skillColumns = `id, name, category, proficiency_level, icon_url, years_of_experience, created_at, updated_at`

func scanSkill(s interface{ Scan(...any) error }, sk *model.Skill) error {
	var level, years sql.NullInt64
	if err := s.Scan(
		&sk.ID, &sk.Name, &sk.Category, &level, &sk.IconURL, &years, &sk.CreatedAt, &sk.UpdatedAt,
	); err != nil {
		return err
	}
	sk.ProficiencyLevel = intPtr(level)
	sk.YearsOfExperience = intPtr(years)
	sk.CreatedAt = sk.CreatedAt.UTC()
	sk.UpdatedAt = sk.UpdatedAt.UTC()
	return nil
}

func (db *DB) ListSkills(ctx context.Context) ([]model.Skill, error) {
	return db.querySkills(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY id`)
}

func (db *DB) ListSkillsByCategory(ctx context.Context, category string) ([]model.Skill, error) {
	return db.querySkills(ctx, `SELECT `+skillColumns+` FROM skills WHERE category = ? ORDER BY id`, category)
}

// ListSkillsByMinProficiency uses ">=": level 3 includes skills at 3. NULL
// proficiency never compares true.
func (db *DB) ListSkillsByMinProficiency(ctx context.Context, level int) ([]model.Skill, error) {
	return db.querySkills(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE proficiency_level >= ? ORDER BY proficiency_level DESC, id`,
		level,
	)
}

func (db *DB) querySkills(ctx context.Context, query string, args ...any) ([]model.Skill, error) {
	rows, err := db.conn.QueryContext(ctx, db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing skills: %w", err)
	}
	defer rows.Close()

	skills := make([]model.Skill, 0)
	for rows.Next() {
		var sk model.Skill
		if err := scanSkill(rows, &sk); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning skill row: %w", err)
		}
		skills = append(skills, sk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating skills: %w", err)
	}
	return skills, nil
}

func (db *DB) GetSkill(ctx context.Context, id int64) (*model.Skill, error) {
	var sk model.Skill
	err := scanSkill(db.conn.QueryRowContext(ctx,
		db.rebind(`SELECT `+skillColumns+` FROM skills WHERE id = ?`), id), &sk)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Skill", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlstore: getting skill %d: %w", id, err)
	}
	return &sk, nil
}

func (db *DB) CreateSkill(ctx context.Context, sk *model.Skill) error {
	err := db.conn.QueryRowContext(ctx, db.rebind(
		`INSERT INTO skills (name, category, proficiency_level, icon_url, years_of_experience, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`),
		sk.Name, sk.Category, nullInt(sk.ProficiencyLevel), sk.IconURL, nullInt(sk.YearsOfExperience),
		sk.CreatedAt.UTC(), sk.UpdatedAt.UTC(),
	).Scan(&sk.ID)
	if err != nil {
		return fmt.Errorf("sqlstore: creating skill: %w", err)
	}
	return nil
}

func (db *DB) UpdateSkill(ctx context.Context, sk *model.Skill) error {
	res, err := db.conn.ExecContext(ctx, db.rebind(
		`UPDATE skills
		 SET name = ?, category = ?, proficiency_level = ?, icon_url = ?, years_of_experience = ?, updated_at = ?
		 WHERE id = ?`),
		sk.Name, sk.Category, nullInt(sk.ProficiencyLevel), sk.IconURL, nullInt(sk.YearsOfExperience),
		sk.UpdatedAt.UTC(), sk.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: updating skill %d: %w", sk.ID, err)
	}
	return affectedOne(res, apperror.NotFound("Skill", strconv.FormatInt(sk.ID, 10)))
}

func (db *DB) DeleteSkill(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, db.rebind(`DELETE FROM skills WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("sqlstore: deleting skill %d: %w", id, err)
	}
	return affectedOne(res, apperror.NotFound("Skill", strconv.FormatInt(id, 10)))
}
