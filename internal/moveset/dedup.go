package moveset

import (
	"sort"

	"github.com/movedex/moveset-solver/internal/models"
)

// findDuplicateVersions partitions each creature's version groups into
// classes sharing the same generation and an identical move table, keyed to
// one canonical representative. Start-state generation consults this index
// so behaviorally identical versions are expanded once.
func (s *Search) findDuplicateVersions() {
	s.canonicalVersion = make(map[models.CreatureID]map[models.VersionGroupID]models.VersionGroupID, len(s.creatureMoves))

	for creature, byVG := range s.creatureMoves {
		canon := make(map[models.VersionGroupID]models.VersionGroupID, len(byVG))
		s.canonicalVersion[creature] = canon

		vgs := make([]models.VersionGroupID, 0, len(byVG))
		for vg := range byVG {
			vgs = append(vgs, vg)
		}
		sort.Slice(vgs, func(i, j int) bool { return vgs[i] < vgs[j] })

		var (
			rep     models.VersionGroupID
			repGen  int
			repTabl map[models.MoveID]map[models.LearnMethod][]levelCost
		)
		for _, vg := range vgs {
			gen := s.generations[vg]
			table := byVG[vg]
			if rep != 0 && gen == repGen && equalMoveTables(table, repTabl) {
				canon[vg] = rep
				s.stats.DedupedVersions++
				continue
			}
			canon[vg] = vg
			rep, repGen, repTabl = vg, gen, table
		}
	}
}

func equalMoveTables(a, b map[models.MoveID]map[models.LearnMethod][]levelCost) bool {
	if len(a) != len(b) {
		return false
	}
	for move, am := range a {
		bm, ok := b[move]
		if !ok || len(am) != len(bm) {
			return false
		}
		for method, al := range am {
			bl, ok := bm[method]
			if !ok || len(al) != len(bl) {
				return false
			}
			for i := range al {
				if al[i] != bl[i] {
					return false
				}
			}
		}
	}
	return true
}
