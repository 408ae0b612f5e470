package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// sideTable describes a table holding one string collection of an entity:
// one row per (owner id, value).
type sideTable struct {
	table string
	owner string
	value string
}

var (
	projectTechnologies        = sideTable{"project_technologies", "project_id", "technology"}
	projectCategories          = sideTable{"project_categories", "project_id", "category"}
	experienceResponsibilities = sideTable{"experience_responsibilities", "experience_id", "responsibility"}
	experienceTechnologies     = sideTable{"experience_technologies", "experience_id", "technology"}
)

// load fetches the collections of every owner in ids with a single query.
// Owners without values are absent from the returned map.
//
// Callers must have closed their own *sql.Rows first: with SQLite the pool
// holds a single connection.
func (db *DB) load(ctx context.Context, q querier, st sideTable, ids []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s IN (%s) ORDER BY %s, %s`,
		st.owner, st.value, st.table, st.owner, placeholders(len(ids)), st.owner, st.value)

	rows, err := q.QueryContext(ctx, db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: loading %s: %w", st.table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var owner int64
		var value string
		if err := rows.Scan(&owner, &value); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning %s row: %w", st.table, err)
		}
		out[owner] = append(out[owner], value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating %s: %w", st.table, err)
	}

	return out, nil
}

// replace swaps the whole collection of owner for values.
func (db *DB) replace(ctx context.Context, tx *sql.Tx, st sideTable, owner int64, values []string) error {
	if err := db.clear(ctx, tx, st, owner); err != nil {
		return err
	}

	insert := db.rebind(fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (?, ?)`, st.table, st.owner, st.value))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}

		if _, err := tx.ExecContext(ctx, insert, owner, v); err != nil {
			return fmt.Errorf("sqlstore: inserting into %s: %w", st.table, err)
		}
	}
	return nil
}

// clear removes every value of owner.
func (db *DB) clear(ctx context.Context, tx *sql.Tx, st sideTable, owner int64) error {
	query := db.rebind(fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, st.table, st.owner))
	if _, err := tx.ExecContext(ctx, query, owner); err != nil {
		return fmt.Errorf("sqlstore: clearing %s: %w", st.table, err)
	}
	return nil
}

// valuesOf returns the collection for id, never nil.
func valuesOf(m map[int64][]string, id int64) []string {
	if v, ok := m[id]; ok {
		return v
	}
	return []string{}
}

// nullTime converts an optional time to a driver value in UTC.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return int64(*i)
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
