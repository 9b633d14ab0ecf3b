package moveset

import (
	"context"
	"fmt"
	"sort"

	"github.com/movedex/moveset-solver/internal/models"
)

// loadVersionGroups resolves the set of version groups reachable from the
// goal version group via trading and transfer, and records each one's
// generation. Move-pool loading is restricted to this set, so it must run
// before any learn records are scanned.
func (s *Search) loadVersionGroups(ctx context.Context) error {
	rows, err := s.store.VersionGroups(ctx)
	if err != nil {
		return fmt.Errorf("loading version groups: %w", err)
	}

	excluded := make(map[models.VersionGroupID]bool, len(s.opts.ExcludeVersions))
	for _, vg := range s.opts.ExcludeVersions {
		excluded[vg] = true
	}

	all := make(map[models.VersionGroupID]int, len(rows))
	for _, row := range rows {
		if excluded[row.ID] {
			continue
		}
		all[row.ID] = row.Generation
	}
	if _, ok := all[s.goalVersionGroup]; !ok {
		return fmt.Errorf("goal version group %d is unknown or excluded", s.goalVersionGroup)
	}

	// Connectivity only: a version group is kept when some chain of trades
	// leads from it into the goal version group.
	reach := map[models.VersionGroupID]int{s.goalVersionGroup: all[s.goalVersionGroup]}
	queue := []models.VersionGroupID{s.goalVersionGroup}
	ids := make([]models.VersionGroupID, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for len(queue) > 0 {
		to := queue[0]
		queue = queue[1:]
		for _, from := range ids {
			if _, seen := reach[from]; seen {
				continue
			}
			if _, ok := tradeCost(s.costs, all, from, to); ok {
				reach[from] = all[from]
				queue = append(queue, from)
			}
		}
	}

	s.generations = reach
	return nil
}

// tradeCost applies the generation-compatibility rules for moving a creature
// (and its known moves) between two version groups. thingGenerations are the
// generations of everything being traded; ok is false when the trade is
// impossible.
func tradeCost(costs models.Costs, gens map[models.VersionGroupID]int, from, to models.VersionGroupID, thingGenerations ...int) (int, bool) {
	genFrom, okFrom := gens[from]
	genTo, okTo := gens[to]
	if !okFrom || !okTo {
		return 0, false
	}
	trade := costs[models.CostTrade]
	if genFrom == genTo {
		return trade, true
	}
	for _, gen := range thingGenerations {
		if gen > genTo {
			// Knowledge can't be carried back in time.
			return 0, false
		}
	}
	// Generations 1 and 2 interoperate with each other only.
	if genFrom <= 2 {
		if genTo <= 2 {
			return trade, true
		}
		return 0, false
	}
	if genTo <= 2 {
		return 0, false
	}
	if genFrom > genTo {
		return 0, false
	}
	if genFrom < genTo-1 {
		// Transfer machines only move things one generation forward.
		return 0, false
	}
	return trade + costs[models.CostTransfer], true
}

// TradeCost returns the cost of trading between two reachable version
// groups, with ok=false when the trade is impossible.
func (s *Search) TradeCost(from, to models.VersionGroupID, thingGenerations ...int) (int, bool) {
	return tradeCost(s.costs, s.generations, from, to, thingGenerations...)
}

// ReachableVersionGroups lists the version groups the search considers,
// sorted ascending.
func (s *Search) ReachableVersionGroups() []models.VersionGroupID {
	out := make([]models.VersionGroupID, 0, len(s.generations))
	for vg := range s.generations {
		out = append(out, vg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Generation returns the generation of a reachable version group.
func (s *Search) Generation(vg models.VersionGroupID) int {
	return s.generations[vg]
}
