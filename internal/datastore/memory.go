package datastore

import (
	"context"
	"fmt"
	"sort"

	"github.com/movedex/moveset-solver/internal/models"
)

// Memory is an in-memory Store. It backs tests and embedders that already
// hold the game data; fields are consumed as-is and must not be mutated
// after the first query.
type Memory struct {
	VersionGroupRows []VersionGroup
	CreatureRows     []Creature
	LineageRows      []Lineage
	EvolutionRows    []Evolution
	LearnRecordRows  []LearnRecord

	MoveIdentifiers     map[string]models.MoveID
	GroupIdentifiers    map[string]models.GroupID
	CreatureIdentifiers map[string]models.CreatureID
	VersionIdentifiers  map[string]models.VersionGroupID
}

var _ Store = (*Memory)(nil)

// VersionGroups returns all version-group rows sorted by ID.
func (m *Memory) VersionGroups(ctx context.Context) ([]VersionGroup, error) {
	rows := append([]VersionGroup(nil), m.VersionGroupRows...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

// Creatures returns all creature rows sorted by ID.
func (m *Memory) Creatures(ctx context.Context) ([]Creature, error) {
	rows := append([]Creature(nil), m.CreatureRows...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

// Lineages returns all lineage rows sorted by ID.
func (m *Memory) Lineages(ctx context.Context) ([]Lineage, error) {
	rows := append([]Lineage(nil), m.LineageRows...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

// Evolutions returns all evolution rows sorted by child ID.
func (m *Memory) Evolutions(ctx context.Context) ([]Evolution, error) {
	rows := append([]Evolution(nil), m.EvolutionRows...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Child < rows[j].Child })
	return rows, nil
}

// LearnRecords filters the in-memory rows and returns them in store order.
func (m *Memory) LearnRecords(ctx context.Context, f LearnRecordFilter) ([]LearnRecord, error) {
	vgs := make(map[models.VersionGroupID]bool, len(f.VersionGroups))
	for _, vg := range f.VersionGroups {
		vgs[vg] = true
	}
	moves := make(map[models.MoveID]bool, len(f.Moves))
	for _, mv := range f.Moves {
		moves[mv] = true
	}
	excluded := make(map[models.LineageID]bool, len(f.ExcludeLineages))
	for _, l := range f.ExcludeLineages {
		excluded[l] = true
	}

	var rows []LearnRecord
	for _, r := range m.LearnRecordRows {
		if !vgs[r.VersionGroup] {
			continue
		}
		if !moves[r.Move] && r.Level <= f.LevelAbove {
			continue
		}
		if excluded[r.Lineage] {
			continue
		}
		if f.Lineage != 0 && r.Lineage != f.Lineage {
			continue
		}
		if f.NotLineage != 0 && r.Lineage == f.NotLineage {
			continue
		}
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if a.Creature != b.Creature {
			return a.Creature < b.Creature
		}
		if a.VersionGroup != b.VersionGroup {
			return a.VersionGroup < b.VersionGroup
		}
		if a.Move != b.Move {
			return a.Move < b.Move
		}
		return a.Method < b.Method
	})
	return rows, nil
}

// MoveByIdentifier resolves a move identifier.
func (m *Memory) MoveByIdentifier(ctx context.Context, identifier string) (models.MoveID, error) {
	if id, ok := m.MoveIdentifiers[identifier]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("move %q: %w", identifier, ErrNotFound)
}

// GroupByIdentifier resolves a breeding-group identifier.
func (m *Memory) GroupByIdentifier(ctx context.Context, identifier string) (models.GroupID, error) {
	if id, ok := m.GroupIdentifiers[identifier]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("breeding group %q: %w", identifier, ErrNotFound)
}

// CreatureByIdentifier resolves a creature identifier.
func (m *Memory) CreatureByIdentifier(ctx context.Context, identifier string) (models.CreatureID, error) {
	if id, ok := m.CreatureIdentifiers[identifier]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("creature %q: %w", identifier, ErrNotFound)
}

// VersionGroupByVersion resolves a version identifier to its version group.
func (m *Memory) VersionGroupByVersion(ctx context.Context, identifier string) (models.VersionGroupID, error) {
	if id, ok := m.VersionIdentifiers[identifier]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("version %q: %w", identifier, ErrNotFound)
}
