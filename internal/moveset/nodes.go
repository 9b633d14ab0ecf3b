package moveset

import (
	"fmt"
	"sort"

	"github.com/movedex/moveset-solver/internal/models"
	"github.com/movedex/moveset-solver/internal/search"
)

// initialNode is the pseudo-state every search starts from. It expands into
// one creature state per plausible (creature, version group) pair.
type initialNode struct {
	s *Search
}

// Key identifies the start state.
func (n initialNode) Key() string { return "start" }

// IsGoal is always false for the start state.
func (n initialNode) IsGoal() bool { return false }

// Expand seeds one zero-cost start edge per (creature, canonical version
// group) pair whose breeding groups give the goal moveset any chance.
func (n initialNode) Expand() ([]search.Edge, error) {
	s := n.s
	s.stats.ExpandedStates++

	creatures := make([]models.CreatureID, 0, len(s.creatureMoves))
	for c := range s.creatureMoves {
		creatures = append(creatures, c)
	}
	sort.Slice(creatures, func(i, j int) bool { return creatures[i] < creatures[j] })

	var edges []search.Edge
	for _, creature := range creatures {
		if !s.viableStart(creature) {
			continue
		}
		vgs := make([]models.VersionGroupID, 0, len(s.creatureMoves[creature]))
		for vg := range s.creatureMoves[creature] {
			vgs = append(vgs, vg)
		}
		sort.Slice(vgs, func(i, j int) bool { return vgs[i] < vgs[j] })
		for _, vg := range vgs {
			if s.canonicalVersion[creature][vg] != vg {
				continue
			}
			edges = append(edges, search.Edge{
				Action: models.StartAction{Creature: creature, VersionGroup: vg},
				To:     creatureNode{s: s, creature: creature, versionGroup: vg},
			})
		}
	}
	return edges, nil
}

// viableStart reports whether starting from this creature can possibly
// reach the goal. With a target creature set, some breeding group of the
// candidate must have a recorded breeding requirement; without one, every
// loaded creature is a candidate.
func (s *Search) viableStart(creature models.CreatureID) bool {
	if s.opts.Creature == 0 {
		return true
	}
	for _, g := range s.groupsOf[s.lineageOf[creature]] {
		if len(s.breedsRequired[g]) > 0 {
			return true
		}
	}
	return false
}

// creatureNode is one concrete search state: a creature at a level in a
// version group knowing an exact subset of the goal moves. Values are
// immutable; transitions build new nodes.
type creatureNode struct {
	s            *Search
	creature     models.CreatureID
	level        int
	versionGroup models.VersionGroupID
	moves        MoveSet
	// justLeveled blocks a second same-level level-up learn without an
	// explicit extra level.
	justLeveled bool
}

// Key identifies the state by its full tuple.
func (n creatureNode) Key() string {
	return fmt.Sprintf("c%d l%d v%d m%d j%t",
		n.creature, n.level, n.versionGroup, n.moves, n.justLeveled)
}

// IsGoal reports whether the state holds exactly the goal moveset in the
// goal version group, on the target creature when one was requested.
func (n creatureNode) IsGoal() bool {
	s := n.s
	if n.moves != s.goal.full() || n.versionGroup != s.goalVersionGroup {
		return false
	}
	return s.opts.Creature == 0 || n.creature == s.opts.Creature
}

// Expand lists the single-action transitions out of this state: learns
// while a move slot is free, forgets once all four are taken.
func (n creatureNode) Expand() ([]search.Edge, error) {
	n.s.stats.ExpandedStates++
	if n.moves.Len() < 4 {
		return n.expandLearn()
	}
	return n.expandForget(), nil
}

func (n creatureNode) expandLearn() ([]search.Edge, error) {
	s := n.s
	table := s.creatureMoves[n.creature][n.versionGroup]

	moveIDs := make([]models.MoveID, 0, len(table))
	for move := range table {
		moveIDs = append(moveIDs, move)
	}
	sort.Slice(moveIDs, func(i, j int) bool { return moveIDs[i] < moveIDs[j] })

	var edges []search.Edge
	for _, move := range moveIDs {
		idx, isGoal := s.goal.index[move]
		if !isGoal || n.moves.Has(idx) {
			continue
		}
		byMethod := table[move]
		methods := make([]models.LearnMethod, 0, len(byMethod))
		for method := range byMethod {
			methods = append(methods, method)
		}
		sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })

		relearnOffered := false
		for _, method := range methods {
			for _, lc := range byMethod[method] {
				switch method {
				case models.MethodLevelUp:
					diff := lc.Level - n.level
					if diff > 0 || (diff == 0 && n.justLeveled) {
						cost := lc.Cost + diff*s.costs[models.CostPerLevel]
						next := n
						next.level = lc.Level
						next.justLeveled = true
						next.moves = n.moves.With(idx)
						edges = append(edges, search.Edge{
							Cost:   cost,
							Action: models.LearnAction{Move: move, Method: models.MethodLevelUp},
							To:     next,
						})
					} else if !relearnOffered {
						// The level is behind us; the move recall service
						// is the only way back to it.
						relearnOffered = true
						next := n
						next.justLeveled = false
						next.moves = n.moves.With(idx)
						edges = append(edges, search.Edge{
							Cost:   s.costs[models.CostRelearn],
							Action: models.LearnAction{Move: move, Method: models.MethodRelearn},
							To:     next,
						})
					}

				case models.MethodMachine, models.MethodTutor:
					next := n
					next.justLeveled = false
					next.moves = n.moves.With(idx)
					edges = append(edges, search.Edge{
						Cost:   lc.Cost,
						Action: models.LearnAction{Move: move, Method: method},
						To:     next,
					})

				case models.MethodEgg:
					// Only offered when some donor chain can actually feed
					// the move into one of this creature's breeding groups.
					if !s.eggPassable(s.lineageOf[n.creature], idx) {
						continue
					}
					next := n
					next.justLeveled = false
					next.moves = n.moves.With(idx)
					edges = append(edges, search.Edge{
						Cost:   lc.Cost,
						Action: models.LearnAction{Move: move, Method: models.MethodEgg},
						To:     next,
					})

				case models.MethodLightBallEgg:
					if n.level != 0 {
						continue
					}
					next := n
					next.moves = n.moves.With(idx)
					edges = append(edges, search.Edge{
						Cost:   lc.Cost,
						Action: models.LearnAction{Move: move, Method: method},
						To:     next,
					})

				case models.MethodStadiumSurfing, models.MethodColosseumPurify,
					models.MethodShadow, models.MethodShadowPurify,
					models.MethodFormChange:
					next := n
					next.justLeveled = false
					next.moves = n.moves.With(idx)
					edges = append(edges, search.Edge{
						Cost:   lc.Cost,
						Action: models.LearnAction{Move: move, Method: method},
						To:     next,
					})

				default:
					return nil, fmt.Errorf("%w: method %q on creature %d move %d",
						ErrMovesNotLearnable, method, n.creature, move)
				}
			}
		}
	}
	return edges, nil
}

func (n creatureNode) expandForget() []search.Edge {
	s := n.s
	cost := s.costs[models.CostForget]
	var edges []search.Edge
	for i, move := range s.goal.moves {
		if !n.moves.Has(i) {
			continue
		}
		next := n
		next.justLeveled = false
		next.moves = n.moves.Without(i)
		edges = append(edges, search.Edge{
			Cost:   cost,
			Action: models.ForgetAction{Move: move},
			To:     next,
		})
	}
	return edges
}

// eggPassable reports whether any donor chain can pass the goal move at
// index idx into one of the lineage's breeding groups.
func (s *Search) eggPassable(lineage models.LineageID, idx int) bool {
	for _, g := range s.groupsOf[lineage] {
		if s.groupPassable[g].Has(idx) {
			return true
		}
	}
	return false
}
