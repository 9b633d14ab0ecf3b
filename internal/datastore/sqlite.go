package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/movedex/moveset-solver/internal/models"
)

// SQLite is a Store over a SQLite dump of the game data. The solver only
// reads; a single connection is enough for its strictly sequential load
// phase.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	return &SQLite{db: db}, nil
}

// DB returns the underlying handle, for schema setup in tests and tooling.
func (s *SQLite) DB() *sql.DB { return s.db }

// Close releases the connection.
func (s *SQLite) Close() error { return s.db.Close() }

// VersionGroups returns all version groups with their generations.
func (s *SQLite) VersionGroups(ctx context.Context) ([]VersionGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, generation_id FROM version_groups ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VersionGroup
	for rows.Next() {
		var vg VersionGroup
		if err := rows.Scan(&vg.ID, &vg.Generation); err != nil {
			return nil, err
		}
		out = append(out, vg)
	}
	return out, rows.Err()
}

// Creatures returns all creatures with their breeding-group memberships.
func (s *SQLite) Creatures(ctx context.Context) ([]Creature, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.identifier, c.lineage_id,
		       COALESCE(c.evolves_from_id, 0),
		       g.group_id
		FROM creatures c
		LEFT JOIN creature_groups g ON g.creature_id = c.id
		ORDER BY c.id, g.group_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Creature
	for rows.Next() {
		var (
			c     Creature
			group sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Identifier, &c.Lineage, &c.Parent, &group); err != nil {
			return nil, err
		}
		if n := len(out); n > 0 && out[n-1].ID == c.ID {
			if group.Valid {
				out[n-1].Groups = append(out[n-1].Groups, models.GroupID(group.Int64))
			}
			continue
		}
		if group.Valid {
			c.Groups = []models.GroupID{models.GroupID(group.Int64)}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Lineages returns all evolution chains.
func (s *SQLite) Lineages(ctx context.Context) ([]Lineage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, baby_trigger_item_id IS NOT NULL FROM lineages ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Lineage
	for rows.Next() {
		var l Lineage
		if err := rows.Scan(&l.ID, &l.BabyTriggerItem); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Evolutions returns all evolution edges.
func (s *SQLite) Evolutions(ctx context.Context) ([]Evolution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT child_id, trigger_kind, COALESCE(known_move_id, 0),
		       COALESCE(minimum_level, 0)
		FROM evolutions ORDER BY child_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Evolution
	for rows.Next() {
		var e Evolution
		if err := rows.Scan(&e.Child, &e.Trigger, &e.KnownMove, &e.MinimumLevel); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LearnRecords returns matching learn records in store order.
func (s *SQLite) LearnRecords(ctx context.Context, f LearnRecordFilter) ([]LearnRecord, error) {
	var (
		where []string
		args  []any
	)
	where = append(where, "r.version_group_id IN ("+placeholders(len(f.VersionGroups))+")")
	for _, vg := range f.VersionGroups {
		args = append(args, int(vg))
	}
	moveClause := "r.level > ?"
	args = append(args, f.LevelAbove)
	if len(f.Moves) > 0 {
		moveClause = "(" + moveClause + " OR r.move_id IN (" + placeholders(len(f.Moves)) + "))"
		for _, mv := range f.Moves {
			args = append(args, int(mv))
		}
	}
	where = append(where, moveClause)
	if f.Lineage != 0 {
		where = append(where, "c.lineage_id = ?")
		args = append(args, int(f.Lineage))
	}
	if f.NotLineage != 0 {
		where = append(where, "c.lineage_id != ?")
		args = append(args, int(f.NotLineage))
	}
	if len(f.ExcludeLineages) > 0 {
		where = append(where, "c.lineage_id NOT IN ("+placeholders(len(f.ExcludeLineages))+")")
		for _, l := range f.ExcludeLineages {
			args = append(args, int(l))
		}
	}

	query := `
		SELECT r.creature_id, c.lineage_id, r.version_group_id,
		       r.move_id, r.method, r.level
		FROM learn_records r
		JOIN creatures c ON c.id = r.creature_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY r.level, r.creature_id, r.version_group_id, r.move_id, r.method`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LearnRecord
	for rows.Next() {
		var r LearnRecord
		if err := rows.Scan(&r.Creature, &r.Lineage, &r.VersionGroup, &r.Move, &r.Method, &r.Level); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MoveByIdentifier resolves a move identifier.
func (s *SQLite) MoveByIdentifier(ctx context.Context, identifier string) (models.MoveID, error) {
	var id models.MoveID
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM moves WHERE identifier = ?`, identifier).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("move %q: %w", identifier, ErrNotFound)
	}
	return id, err
}

// GroupByIdentifier resolves a breeding-group identifier.
func (s *SQLite) GroupByIdentifier(ctx context.Context, identifier string) (models.GroupID, error) {
	var id models.GroupID
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM groups WHERE identifier = ?`, identifier).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("breeding group %q: %w", identifier, ErrNotFound)
	}
	return id, err
}

// CreatureByIdentifier resolves a creature identifier.
func (s *SQLite) CreatureByIdentifier(ctx context.Context, identifier string) (models.CreatureID, error) {
	var id models.CreatureID
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM creatures WHERE identifier = ?`, identifier).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("creature %q: %w", identifier, ErrNotFound)
	}
	return id, err
}

// VersionGroupByVersion resolves a version identifier to its version group.
func (s *SQLite) VersionGroupByVersion(ctx context.Context, identifier string) (models.VersionGroupID, error) {
	var id models.VersionGroupID
	err := s.db.QueryRowContext(ctx,
		`SELECT version_group_id FROM versions WHERE identifier = ?`, identifier).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("version %q: %w", identifier, ErrNotFound)
	}
	return id, err
}

func placeholders(n int) string {
	if n == 0 {
		return "NULL"
	}
	return strings.Repeat("?, ", n-1) + "?"
}
