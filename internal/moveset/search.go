// Package moveset plans the cheapest way for a creature to legally end up
// knowing a set of up to four moves at a given game version. It derives
// read-only indices from the data store (version reachability, lineages,
// move pools, breeding requirements, duplicate versions), then drives a
// best-first search over (creature, level, version group, known moves)
// states, enumerating every action sequence tied for minimum cost.
package moveset

import (
	"context"
	"fmt"

	"github.com/movedex/moveset-solver/internal/datastore"
	"github.com/movedex/moveset-solver/internal/models"
	"github.com/movedex/moveset-solver/internal/search"
)

// Options describes one search invocation.
type Options struct {
	// Creature is the target; zero asks whether anything at all can hold
	// the moveset.
	Creature models.CreatureID
	// VersionGroup is the goal version group.
	VersionGroup models.VersionGroupID
	// Moves are the 1-4 goal moves; order and duplicates are ignored.
	Moves []models.MoveID
	// Level bounds level-up exploitation; zero means 100.
	Level int
	// Costs overrides the default cost table wholesale; nil keeps defaults.
	Costs models.Costs
	// ExcludeVersions removes version groups from consideration.
	ExcludeVersions []models.VersionGroupID
	// ExcludeCreatures removes whole lineages from consideration.
	ExcludeCreatures []models.CreatureID
	// Notify is an optional progress hook for the main search.
	Notify search.Notify
}

// Stats are per-session counters, owned by the Search so concurrent
// sessions stay independent.
type Stats struct {
	Creatures         int
	Lineages          int
	ReachableVersions int
	LoadedRecords     int
	DedupedVersions   int
	ExpandedStates    int
}

// Search holds the derived, read-only data one invocation plans over. Build
// it with New; it is not safe for concurrent use.
type Search struct {
	store datastore.Store
	opts  Options
	costs models.Costs

	goal             goalIndex
	goalVersionGroup models.VersionGroupID
	goalLineage      models.LineageID
	level            int

	sketch      models.MoveID
	noEggsGroup models.GroupID
	dittoGroup  models.GroupID

	// version resolver
	generations map[models.VersionGroupID]int

	// lineage index
	lineageOf        map[models.CreatureID]models.LineageID
	lineageMembers   map[models.LineageID][]models.CreatureID
	groupsOf         map[models.LineageID][]models.GroupID
	parents          map[models.CreatureID]models.CreatureID
	childrenOf       map[models.CreatureID][]models.CreatureID
	evolutionMoves   map[models.LineageID]models.MoveID
	babies           map[models.GroupID]map[models.CreatureID]bool
	unbreedable      map[models.CreatureID]bool
	excludedLineages map[models.LineageID]bool

	// move pools
	creatureMoves map[models.CreatureID]map[models.VersionGroupID]map[models.MoveID]map[models.LearnMethod][]levelCost
	movePools     map[models.LineageID]map[models.MoveID]int
	learnPools    map[models.LineageID]MoveSet
	relayLineages map[models.LineageID]bool
	eggMoves      MoveSet

	// breeding reachability
	groupPassable  map[models.GroupID]MoveSet
	groupLearnable map[models.GroupID]MoveSet
	breedsRequired map[models.GroupID]map[MoveSet]int

	// version deduplication
	canonicalVersion map[models.CreatureID]map[models.VersionGroupID]models.VersionGroupID

	stats Stats
}

// New validates the request and builds every derived index, in dependency
// order: lineages, then reachable versions, then move pools, then breeding
// reachability, then duplicate versions. Named rejections (ErrNoMoves,
// ErrTooManyMoves, ErrTargetExcluded, ErrConfiguration) fire here; an
// unobtainable moveset is not an error but an empty result stream.
func New(ctx context.Context, store datastore.Store, opts Options) (*Search, error) {
	if len(opts.Moves) == 0 {
		return nil, ErrNoMoves
	}
	if len(opts.Moves) > 4 {
		return nil, ErrTooManyMoves
	}

	costs := opts.Costs
	if costs == nil {
		costs = models.DefaultCosts()
	}
	if err := costs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	s := &Search{
		store:            store,
		opts:             opts,
		costs:            costs,
		goal:             newGoalIndex(opts.Moves),
		goalVersionGroup: opts.VersionGroup,
		level:            opts.Level,

		creatureMoves: make(map[models.CreatureID]map[models.VersionGroupID]map[models.MoveID]map[models.LearnMethod][]levelCost),
		movePools:     make(map[models.LineageID]map[models.MoveID]int),
		learnPools:    make(map[models.LineageID]MoveSet),
		relayLineages: make(map[models.LineageID]bool),
	}
	if s.level == 0 {
		s.level = 100
	}

	var err error
	if s.sketch, err = store.MoveByIdentifier(ctx, "sketch"); err != nil {
		return nil, err
	}
	if s.noEggsGroup, err = store.GroupByIdentifier(ctx, "no-eggs"); err != nil {
		return nil, err
	}
	if s.dittoGroup, err = store.GroupByIdentifier(ctx, "ditto"); err != nil {
		return nil, err
	}

	if err := s.loadLineages(ctx); err != nil {
		return nil, err
	}
	if err := s.resolveExclusions(); err != nil {
		return nil, err
	}
	if err := s.loadVersionGroups(ctx); err != nil {
		return nil, err
	}
	s.stats.ReachableVersions = len(s.generations)

	easy, nonEgg, err := s.loadMoves(ctx, selectFamily)
	if err != nil {
		return nil, err
	}
	s.eggMoves = s.goal.full() &^ nonEgg
	if hard := s.goal.full() &^ easy; !hard.Empty() && s.goalLineage != 0 {
		// Breeding is unavoidable: pull in every other lineage's records.
		if _, _, err := s.loadMoves(ctx, selectOthers); err != nil {
			return nil, err
		}
	}

	s.buildBreedGraph()
	s.findDuplicateVersions()
	return s, nil
}

// Results starts the main search. The returned stream is lazy, single-use,
// and safely abandonable; all paths it yields share the minimum total cost.
func (s *Search) Results() *Results {
	return &Results{enum: search.FindAllPaths(initialNode{s: s}, search.Options{Notify: s.opts.Notify})}
}

// Stats returns the session's counters.
func (s *Search) Stats() Stats { return s.stats }

// GoalMoves returns the deduplicated goal moves, sorted ascending.
func (s *Search) GoalMoves() []models.MoveID {
	return append([]models.MoveID(nil), s.goal.moves...)
}

// Results is the lazy stream of optimal action sequences.
type Results struct {
	enum *search.Enumerator
}

// Next returns the next optimal path, or nil once the stream is exhausted.
func (r *Results) Next() (*models.ResultPath, error) {
	path, err := r.enum.Next()
	if err != nil || path == nil {
		return nil, err
	}
	actions := make([]models.Action, len(path.Steps))
	for i, step := range path.Steps {
		actions[i] = step.Action.(models.Action)
	}
	return &models.ResultPath{Actions: actions, TotalCost: path.TotalCost}, nil
}
