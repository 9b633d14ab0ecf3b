package moveset

import (
	"context"
	"fmt"
	"sort"

	"github.com/movedex/moveset-solver/internal/datastore"
	"github.com/movedex/moveset-solver/internal/models"
)

// selection picks which lineages a learn-record scan covers.
type selection int

const (
	// selectFamily scans only the goal lineage (or everything when the
	// search has no target creature).
	selectFamily selection = iota
	// selectOthers scans every lineage except the goal lineage. Only needed
	// when some goal moves are unreachable without breeding help.
	selectOthers
)

// levelCost is one learn opportunity: the level it happens at and its
// precomputed cost.
type levelCost struct {
	Level int
	Cost  int
}

// loadMoves scans learn records for the given selection, populating the
// per-creature move tables, the per-lineage move and learn pools, and the
// relay-lineage set.
//
// The returned sets are only meaningful for selectFamily: easy holds goal
// moves cheaper to learn directly than to breed, nonEgg holds goal moves
// obtainable without breeding at all.
func (s *Search) loadMoves(ctx context.Context, sel selection) (easy, nonEgg MoveSet, err error) {
	include := append([]models.MoveID(nil), s.goal.moves...)
	include = append(include, s.sketch)
	evoMoves := make([]models.MoveID, 0, len(s.evolutionMoves))
	for _, m := range s.evolutionMoves {
		evoMoves = append(evoMoves, m)
	}
	sort.Slice(evoMoves, func(i, j int) bool { return evoMoves[i] < evoMoves[j] })
	include = append(include, evoMoves...)

	filter := datastore.LearnRecordFilter{
		VersionGroups: s.ReachableVersionGroups(),
		Moves:         include,
		LevelAbove:    100,
	}
	for lineage := range s.excludedLineages {
		filter.ExcludeLineages = append(filter.ExcludeLineages, lineage)
	}
	sort.Slice(filter.ExcludeLineages, func(i, j int) bool {
		return filter.ExcludeLineages[i] < filter.ExcludeLineages[j]
	})
	if s.goalLineage != 0 {
		switch sel {
		case selectFamily:
			filter.Lineage = s.goalLineage
		case selectOthers:
			filter.NotLineage = s.goalLineage
		}
	}

	records, err := s.store.LearnRecords(ctx, filter)
	if err != nil {
		return 0, 0, fmt.Errorf("loading learn records: %w", err)
	}

	breedCost := s.costs[models.CostBreed]
	for _, r := range records {
		if !r.Method.Known() {
			return 0, 0, fmt.Errorf("%w: method %q on creature %d move %d",
				ErrMovesNotLearnable, r.Method, r.Creature, r.Move)
		}

		var cost int
		if idx, isGoal := s.goal.index[r.Move]; isGoal {
			cost = s.methodCost(r.Method, r.VersionGroup)
			if cur, ok := s.movePool(r.Lineage)[r.Move]; !ok || cost < cur {
				s.movePool(r.Lineage)[r.Move] = cost
			}
			if r.Method != models.MethodEgg {
				s.learnPools[r.Lineage] = s.learnPools[r.Lineage].With(idx)
				nonEgg = nonEgg.With(idx)
				if cost < breedCost {
					easy = easy.With(idx)
				}
			}
		} else if r.Move == s.sketch {
			cost = s.costs[models.CostSketch]
			s.relayLineages[r.Lineage] = true
		} else {
			// An evolution-trigger move. It only matters for the lineage
			// that actually evolves by it: the evolution is a mandatory
			// prerequisite there, so any positive cost works.
			if r.Move != s.evolutionMoves[r.Lineage] {
				continue
			}
			cost = 1
		}
		s.addRecord(r, cost)
	}
	return easy, nonEgg, nil
}

// methodCost maps a learn method to its cost for a goal move, applying the
// generation-sensitive overrides: machines are single-use before generation
// 5, tutors are single-use in generation 3, and egg records carry the breed
// cost.
func (s *Search) methodCost(method models.LearnMethod, vg models.VersionGroupID) int {
	if method == models.MethodLevelUp {
		return s.costs[models.CostLevelUp]
	}
	gen := s.generations[vg]
	switch {
	case method == models.MethodMachine && gen < 5:
		return s.costs[models.CostMachineOnce]
	case method == models.MethodTutor && gen == 3:
		return s.costs[models.CostTutorOnce]
	case method == models.MethodEgg:
		return s.costs[models.CostBreed]
	default:
		return s.costs[models.CostKey(method)]
	}
}

func (s *Search) movePool(lineage models.LineageID) map[models.MoveID]int {
	pool, ok := s.movePools[lineage]
	if !ok {
		pool = make(map[models.MoveID]int)
		s.movePools[lineage] = pool
	}
	return pool
}

func (s *Search) addRecord(r datastore.LearnRecord, cost int) {
	byVG, ok := s.creatureMoves[r.Creature]
	if !ok {
		byVG = make(map[models.VersionGroupID]map[models.MoveID]map[models.LearnMethod][]levelCost)
		s.creatureMoves[r.Creature] = byVG
	}
	byMove, ok := byVG[r.VersionGroup]
	if !ok {
		byMove = make(map[models.MoveID]map[models.LearnMethod][]levelCost)
		byVG[r.VersionGroup] = byMove
	}
	byMethod, ok := byMove[r.Move]
	if !ok {
		byMethod = make(map[models.LearnMethod][]levelCost)
		byMove[r.Move] = byMethod
	}
	byMethod[r.Method] = append(byMethod[r.Method], levelCost{Level: r.Level, Cost: cost})
	s.stats.LoadedRecords++
}
