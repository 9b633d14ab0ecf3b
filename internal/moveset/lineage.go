package moveset

import (
	"context"
	"fmt"
	"sort"

	"github.com/movedex/moveset-solver/internal/models"
)

// loadLineages builds the derived indices over creatures, evolution chains,
// and breeding groups: creature to lineage, lineage members, each lineage's
// breeding groups, evolution parents and trigger moves, baby forms per
// group, and the unbreedable set.
func (s *Search) loadLineages(ctx context.Context) error {
	creatures, err := s.store.Creatures(ctx)
	if err != nil {
		return fmt.Errorf("loading creatures: %w", err)
	}
	lineages, err := s.store.Lineages(ctx)
	if err != nil {
		return fmt.Errorf("loading lineages: %w", err)
	}
	evolutions, err := s.store.Evolutions(ctx)
	if err != nil {
		return fmt.Errorf("loading evolutions: %w", err)
	}

	itemBabyLineages := make(map[models.LineageID]bool)
	for _, l := range lineages {
		if l.BabyTriggerItem {
			itemBabyLineages[l.ID] = true
		}
	}

	s.lineageOf = make(map[models.CreatureID]models.LineageID, len(creatures))
	s.lineageMembers = make(map[models.LineageID][]models.CreatureID)
	s.groupsOf = make(map[models.LineageID][]models.GroupID)
	s.parents = make(map[models.CreatureID]models.CreatureID)
	s.childrenOf = make(map[models.CreatureID][]models.CreatureID)
	s.babies = make(map[models.GroupID]map[models.CreatureID]bool)
	s.unbreedable = make(map[models.CreatureID]bool)

	for _, c := range creatures {
		groups := append([]models.GroupID(nil), c.Groups...)
		sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })
		breedable := len(groups) > 0
		for _, g := range groups {
			if g == s.noEggsGroup || g == s.dittoGroup {
				breedable = false
			}
		}
		if !breedable {
			s.unbreedable[c.ID] = true
		} else if len(s.groupsOf[c.Lineage]) <= len(groups) {
			// A lineage inherits the widest group membership among its forms.
			s.groupsOf[c.Lineage] = groups
		}
		s.lineageOf[c.ID] = c.Lineage
		s.lineageMembers[c.Lineage] = append(s.lineageMembers[c.Lineage], c.ID)
		if c.Parent != 0 {
			s.parents[c.ID] = c.Parent
			s.childrenOf[c.Parent] = append(s.childrenOf[c.Parent], c.ID)
		} else if breedable {
			for _, g := range groups {
				if s.babies[g] == nil {
					s.babies[g] = make(map[models.CreatureID]bool)
				}
				s.babies[g][c.ID] = true
			}
		}
	}

	s.evolutionMoves = make(map[models.LineageID]models.MoveID)
	for _, e := range evolutions {
		if e.KnownMove != 0 {
			s.evolutionMoves[s.lineageOf[e.Child]] = e.KnownMove
		}
	}

	// Chains whose baby form depends on a held item: the regular baby (the
	// child of the item-triggered base form) joins the chain's groups too.
	for lineage := range itemBabyLineages {
		for _, member := range s.lineageMembers[lineage] {
			if _, hasParent := s.parents[member]; hasParent {
				continue
			}
			for _, child := range s.childrenOf[member] {
				for _, g := range s.groupsOf[lineage] {
					if s.babies[g] == nil {
						s.babies[g] = make(map[models.CreatureID]bool)
					}
					s.babies[g][child] = true
				}
			}
		}
	}

	s.stats.Creatures = len(creatures)
	s.stats.Lineages = len(s.lineageMembers)
	return nil
}

// resolveExclusions expands excluded creatures to their whole lineages and
// rejects a request whose target sits in an excluded lineage.
func (s *Search) resolveExclusions() error {
	s.excludedLineages = make(map[models.LineageID]bool, len(s.opts.ExcludeCreatures))
	for _, c := range s.opts.ExcludeCreatures {
		lineage, ok := s.lineageOf[c]
		if !ok {
			return fmt.Errorf("excluded creature %d is unknown", c)
		}
		s.excludedLineages[lineage] = true
	}
	if s.opts.Creature != 0 {
		lineage, ok := s.lineageOf[s.opts.Creature]
		if !ok {
			return fmt.Errorf("target creature %d is unknown", s.opts.Creature)
		}
		s.goalLineage = lineage
		if s.excludedLineages[lineage] {
			return ErrTargetExcluded
		}
	}
	return nil
}
