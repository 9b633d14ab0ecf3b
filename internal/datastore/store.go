// Package datastore provides read-only access to the structured game data
// the solver plans over: creatures, lineages, breeding groups, version
// groups, evolutions, and learn records.
package datastore

import (
	"context"
	"errors"

	"github.com/movedex/moveset-solver/internal/models"
)

// ErrNotFound is returned when an identifier lookup has no match.
var ErrNotFound = errors.New("datastore: not found")

// VersionGroup is a version group row with its generation.
type VersionGroup struct {
	ID         models.VersionGroupID
	Generation int
}

// Creature is one creature row with its breeding-group memberships.
type Creature struct {
	ID         models.CreatureID
	Identifier string
	Lineage    models.LineageID
	// Parent is the pre-evolved form, zero if the creature is a base form.
	Parent models.CreatureID
	// Groups holds up to two breeding groups, sorted ascending.
	Groups []models.GroupID
}

// Lineage is one evolution-chain row.
type Lineage struct {
	ID models.LineageID
	// BabyTriggerItem is set when the chain's baby form depends on a held
	// item.
	BabyTriggerItem bool
}

// Evolution is one evolution edge, keyed by the evolved form.
type Evolution struct {
	Child        models.CreatureID
	Trigger      string
	KnownMove    models.MoveID // zero when the evolution needs no move
	MinimumLevel int
}

// LearnRecord is one (creature, version group, move, method, level) row.
type LearnRecord struct {
	Creature     models.CreatureID
	Lineage      models.LineageID
	VersionGroup models.VersionGroupID
	Move         models.MoveID
	Method       models.LearnMethod
	Level        int
}

// LearnRecordFilter restricts a learn-record scan. A record matches when its
// version group is in VersionGroups and either its move is in Moves or its
// level exceeds LevelAbove, subject to the lineage restrictions.
type LearnRecordFilter struct {
	VersionGroups []models.VersionGroupID
	Moves         []models.MoveID
	LevelAbove    int

	// Lineage restricts the scan to one lineage; NotLineage to every other
	// lineage. At most one of the two may be set (non-zero).
	Lineage    models.LineageID
	NotLineage models.LineageID

	ExcludeLineages []models.LineageID
}

// Store answers the solver's queries. Implementations are read-only for the
// lifetime of a search and must return rows in deterministic order.
type Store interface {
	VersionGroups(ctx context.Context) ([]VersionGroup, error)
	Creatures(ctx context.Context) ([]Creature, error)
	Lineages(ctx context.Context) ([]Lineage, error)
	Evolutions(ctx context.Context) ([]Evolution, error)
	// LearnRecords returns matching rows ordered by level ascending, then by
	// creature, version group, move, and method.
	LearnRecords(ctx context.Context, f LearnRecordFilter) ([]LearnRecord, error)

	MoveByIdentifier(ctx context.Context, identifier string) (models.MoveID, error)
	GroupByIdentifier(ctx context.Context, identifier string) (models.GroupID, error)
	CreatureByIdentifier(ctx context.Context, identifier string) (models.CreatureID, error)
	// VersionGroupByVersion resolves a version identifier (not a version
	// group identifier) to its version group.
	VersionGroupByVersion(ctx context.Context, identifier string) (models.VersionGroupID, error)
}
