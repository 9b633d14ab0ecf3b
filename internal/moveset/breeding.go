package moveset

import (
	"sort"

	"github.com/movedex/moveset-solver/internal/models"
)

// buildBreedGraph fills breedsRequired: for each breeding group and each
// subset of the goal moveset, the minimum number of breeding steps needed
// from a parent in that group holding those moves down to the goal lineage.
// A missing entry means breeding through that group can never help.
//
// It also records, per group, which goal moves the group's lineages can pass
// down (passable) and which they can learn without breeding themselves
// (learnable); state expansion uses the passable pools to gate egg-move
// edges.
func (s *Search) buildBreedGraph() {
	s.groupPassable = make(map[models.GroupID]MoveSet)
	s.groupLearnable = make(map[models.GroupID]MoveSet)
	groupSeen := make(map[models.GroupID]bool)

	lineages := make([]models.LineageID, 0, len(s.groupsOf))
	for lineage := range s.groupsOf {
		lineages = append(lineages, lineage)
	}
	sort.Slice(lineages, func(i, j int) bool { return lineages[i] < lineages[j] })

	for _, lineage := range lineages {
		groups := s.groupsOf[lineage]
		if len(groups) == 0 || lineage == s.goalLineage {
			// The goal lineage is the destination, never a donor.
			continue
		}
		var pool MoveSet
		if s.relayLineages[lineage] {
			// Relay lineages copy anything, so they can pass anything.
			pool = s.goal.full()
		} else {
			for move := range s.movePools[lineage] {
				if idx, ok := s.goal.index[move]; ok {
					pool = pool.With(idx)
				}
			}
		}
		learn := s.learnPools[lineage] & pool
		for _, g := range groups {
			s.groupPassable[g] |= pool
			s.groupLearnable[g] |= learn
			groupSeen[g] = true
		}
	}

	allGroups := make([]models.GroupID, 0, len(groupSeen))
	for g := range groupSeen {
		allGroups = append(allGroups, g)
	}
	sort.Slice(allGroups, func(i, j int) bool { return allGroups[i] < allGroups[j] })

	s.breedsRequired = make(map[models.GroupID]map[MoveSet]int)
	goalGroups := s.groupsOf[s.goalLineage]
	for _, g := range goalGroups {
		s.breedFrom(g, s.goal.full(), nil, allGroups)
	}
	// Base case: a single breed from a donor already holding the needed
	// moves covers any subset that includes every egg-only move.
	nonEggGoal := s.goal.full() &^ s.eggMoves
	for _, g := range goalGroups {
		nonEggGoal.subsets(func(sub MoveSet) {
			if sub.Empty() {
				return
			}
			key := sub | s.eggMoves
			if cur, ok := s.breedsRequired[g][key]; !ok || cur > 1 {
				s.setBreedsRequired(g, key, 1)
			}
		})
	}
}

// breedFrom is the recursive reachability search: can a parent in group,
// needing to pass moves down, eventually feed the goal lineage? path holds
// the groups already used by this donor chain; it is extended by value so
// sibling branches never observe each other's visits.
func (s *Search) breedFrom(group models.GroupID, moves MoveSet, path []models.GroupID, allGroups []models.GroupID) bool {
	if moves.Empty() {
		return true
	}
	if c, ok := s.breedsRequired[group][moves]; ok && c <= len(path) {
		return true
	}
	success := false
	path = append(path[:len(path):len(path)], group)
	for _, next := range allGroups {
		if containsGroup(path, next) {
			continue
		}
		if !moves.SubsetOf(s.groupPassable[next]) {
			continue
		}
		// Moves the next group can learn outright need not be passed any
		// further down; try every way of splitting them off.
		learnable := moves & s.groupLearnable[next]
		learnable.subsets(func(learned MoveSet) {
			if s.breedFrom(next, moves&^learned, path, allGroups) {
				hops := len(path) - 1
				if cur, ok := s.breedsRequired[group][moves]; !ok || hops < cur {
					s.setBreedsRequired(group, moves, hops)
				}
				success = true
			}
		})
	}
	return success
}

func (s *Search) setBreedsRequired(group models.GroupID, moves MoveSet, hops int) {
	byMoves, ok := s.breedsRequired[group]
	if !ok {
		byMoves = make(map[MoveSet]int)
		s.breedsRequired[group] = byMoves
	}
	byMoves[moves] = hops
}

// BreedsRequired returns the minimum breeding-step count for passing the
// given goal-move subset down from the given group, with ok=false when no
// donor chain exists.
func (s *Search) BreedsRequired(group models.GroupID, moves MoveSet) (int, bool) {
	c, ok := s.breedsRequired[group][moves]
	return c, ok
}

func containsGroup(path []models.GroupID, g models.GroupID) bool {
	for _, p := range path {
		if p == g {
			return true
		}
	}
	return false
}
