package datastore

import (
	"context"
	"errors"
	"testing"

	"github.com/movedex/moveset-solver/internal/models"
)

func memoryFixture() *Memory {
	return &Memory{
		LearnRecordRows: []LearnRecord{
			{Creature: 1, Lineage: 1, VersionGroup: 1, Move: 100, Method: models.MethodLevelUp, Level: 10},
			{Creature: 1, Lineage: 1, VersionGroup: 1, Move: 200, Method: models.MethodLevelUp, Level: 30},
			{Creature: 1, Lineage: 1, VersionGroup: 2, Move: 100, Method: models.MethodMachine},
			{Creature: 2, Lineage: 2, VersionGroup: 1, Move: 100, Method: models.MethodLevelUp, Level: 5},
			{Creature: 3, Lineage: 3, VersionGroup: 1, Move: 100, Method: models.MethodTutor},
		},
		MoveIdentifiers: map[string]models.MoveID{"pound": 100},
	}
}

func TestMemoryLearnRecordsFilter(t *testing.T) {
	ctx := context.Background()
	m := memoryFixture()

	// Version group gate plus the move-or-high-level disjunction.
	rows, err := m.LearnRecords(ctx, LearnRecordFilter{
		VersionGroups: []models.VersionGroupID{1},
		Moves:         []models.MoveID{100},
		LevelAbove:    20,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	// Store order: level ascending, then creature.
	if rows[0].Level != 0 || rows[len(rows)-1].Level != 30 {
		t.Errorf("rows not in level order: %v", rows)
	}
	for i := 1; i < len(rows); i++ {
		a, b := rows[i-1], rows[i]
		if a.Level > b.Level || (a.Level == b.Level && a.Creature > b.Creature) {
			t.Errorf("rows %d and %d out of order: %v, %v", i-1, i, a, b)
		}
	}

	// Move 200 at level 30 clears LevelAbove 20 even though it is not in
	// the move set.
	var sawHighLevel bool
	for _, r := range rows {
		if r.Move == 200 {
			sawHighLevel = true
		}
	}
	if !sawHighLevel {
		t.Error("high-level record outside the move set was dropped")
	}
}

func TestMemoryLearnRecordsLineageRestrictions(t *testing.T) {
	ctx := context.Background()
	m := memoryFixture()
	base := LearnRecordFilter{
		VersionGroups: []models.VersionGroupID{1, 2},
		Moves:         []models.MoveID{100, 200},
	}

	only := base
	only.Lineage = 1
	rows, err := m.LearnRecords(ctx, only)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		if r.Lineage != 1 {
			t.Errorf("Lineage filter leaked row %v", r)
		}
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows for lineage 1, want 3", len(rows))
	}

	not := base
	not.NotLineage = 1
	rows, err = m.LearnRecords(ctx, not)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		if r.Lineage == 1 {
			t.Errorf("NotLineage filter leaked row %v", r)
		}
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows outside lineage 1, want 2", len(rows))
	}

	excl := base
	excl.ExcludeLineages = []models.LineageID{2, 3}
	rows, err = m.LearnRecords(ctx, excl)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		if r.Lineage != 1 {
			t.Errorf("ExcludeLineages leaked row %v", r)
		}
	}
}

func TestMemoryIdentifierLookups(t *testing.T) {
	ctx := context.Background()
	m := memoryFixture()

	id, err := m.MoveByIdentifier(ctx, "pound")
	if err != nil || id != 100 {
		t.Errorf("MoveByIdentifier = %d, %v; want 100, nil", id, err)
	}
	if _, err := m.MoveByIdentifier(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing move: err = %v, want ErrNotFound", err)
	}
	if _, err := m.GroupByIdentifier(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing group: err = %v, want ErrNotFound", err)
	}
	if _, err := m.CreatureByIdentifier(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing creature: err = %v, want ErrNotFound", err)
	}
	if _, err := m.VersionGroupByVersion(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing version: err = %v, want ErrNotFound", err)
	}
}
