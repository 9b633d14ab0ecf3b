package moveset

import (
	"math/bits"
	"sort"

	"github.com/movedex/moveset-solver/internal/models"
)

// MoveSet is a bitset over the goal moves of one search, indexed by the
// position of each move in the sorted goal slice. With at most four goal
// moves a byte is plenty, and bitset keys keep the breeding memo table flat.
type MoveSet uint8

// Has reports whether the move at index i is in the set.
func (m MoveSet) Has(i int) bool { return m&(1<<uint(i)) != 0 }

// With returns the set plus the move at index i.
func (m MoveSet) With(i int) MoveSet { return m | 1<<uint(i) }

// Without returns the set minus the move at index i.
func (m MoveSet) Without(i int) MoveSet { return m &^ (1 << uint(i)) }

// Len returns the number of moves in the set.
func (m MoveSet) Len() int { return bits.OnesCount8(uint8(m)) }

// Empty reports whether the set has no moves.
func (m MoveSet) Empty() bool { return m == 0 }

// SubsetOf reports whether every move of m is in o.
func (m MoveSet) SubsetOf(o MoveSet) bool { return m&^o == 0 }

// Moves resolves the set back to move IDs against the sorted goal slice.
func (m MoveSet) Moves(goal []models.MoveID) []models.MoveID {
	var out []models.MoveID
	for i := range goal {
		if m.Has(i) {
			out = append(out, goal[i])
		}
	}
	return out
}

// subsets calls fn for every subset of m, the empty set included.
func (m MoveSet) subsets(fn func(MoveSet)) {
	sub := m
	for {
		fn(sub)
		if sub == 0 {
			return
		}
		sub = (sub - 1) & m
	}
}

// goalIndex maps goal move IDs to bitset indices, and back.
type goalIndex struct {
	moves []models.MoveID // sorted ascending
	index map[models.MoveID]int
}

func newGoalIndex(moves []models.MoveID) goalIndex {
	uniq := make(map[models.MoveID]bool, len(moves))
	for _, m := range moves {
		uniq[m] = true
	}
	sorted := make([]models.MoveID, 0, len(uniq))
	for m := range uniq {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := make(map[models.MoveID]int, len(sorted))
	for i, m := range sorted {
		idx[m] = i
	}
	return goalIndex{moves: sorted, index: idx}
}

// full returns the set holding every goal move.
func (g goalIndex) full() MoveSet {
	return MoveSet(1)<<uint(len(g.moves)) - 1
}
