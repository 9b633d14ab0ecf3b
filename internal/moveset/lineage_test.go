package moveset

import (
	"context"
	"testing"

	"github.com/movedex/moveset-solver/internal/datastore"
	"github.com/movedex/moveset-solver/internal/models"
)

func TestLoadLineages(t *testing.T) {
	store := &datastore.Memory{
		CreatureRows: []datastore.Creature{
			// Chain 1: baby 1 evolves into 2 evolves into 3. The evolved
			// forms carry a second breeding group.
			{ID: 1, Identifier: "hatchling", Lineage: 1, Groups: []models.GroupID{10}},
			{ID: 2, Identifier: "juvenile", Lineage: 1, Parent: 1, Groups: []models.GroupID{10, 20}},
			{ID: 3, Identifier: "adult", Lineage: 1, Parent: 2, Groups: []models.GroupID{10, 20}},
			// Chain 2: a single unbreedable creature.
			{ID: 4, Identifier: "construct", Lineage: 2, Groups: []models.GroupID{groupNoEggs}},
			// Chain 3: an item-dependent baby (5) with regular base form 6.
			{ID: 5, Identifier: "itembaby", Lineage: 3, Groups: []models.GroupID{30}},
			{ID: 6, Identifier: "base", Lineage: 3, Parent: 5, Groups: []models.GroupID{30}},
		},
		LineageRows: []datastore.Lineage{
			{ID: 1}, {ID: 2}, {ID: 3, BabyTriggerItem: true},
		},
		EvolutionRows: []datastore.Evolution{
			{Child: 2, Trigger: "level-up"},
			{Child: 3, Trigger: "level-up", KnownMove: 300},
		},
	}

	s := &Search{
		store:       store,
		costs:       models.DefaultCosts(),
		noEggsGroup: groupNoEggs,
		dittoGroup:  groupDitto,
	}
	if err := s.loadLineages(context.Background()); err != nil {
		t.Fatalf("loadLineages: %v", err)
	}

	// A lineage gets the widest group membership among its forms.
	groups := s.groupsOf[1]
	if len(groups) != 2 || groups[0] != 10 || groups[1] != 20 {
		t.Errorf("groupsOf[1] = %v, want [10 20]", groups)
	}

	if !s.unbreedable[4] {
		t.Error("creature 4 in the no-eggs group should be unbreedable")
	}
	if s.unbreedable[1] {
		t.Error("creature 1 should be breedable")
	}

	// Parentless breedable forms are the babies of their groups.
	if !s.babies[10][1] {
		t.Error("creature 1 should be a baby of group 10")
	}
	if s.babies[10][2] {
		t.Error("evolved creature 2 is not a baby")
	}

	// Item-dependent chains also accept their regular base form as a baby.
	if !s.babies[30][5] {
		t.Error("item baby 5 should be a baby of group 30")
	}
	if !s.babies[30][6] {
		t.Error("regular base form 6 should join the babies of group 30")
	}

	if s.parents[3] != 2 || s.parents[2] != 1 {
		t.Errorf("parents = %v, want 3->2->1", s.parents)
	}
	if got := s.evolutionMoves[1]; got != 300 {
		t.Errorf("evolutionMoves[1] = %d, want 300", got)
	}
	if _, ok := s.evolutionMoves[2]; ok {
		t.Error("lineage 2 has no evolution move")
	}
}
