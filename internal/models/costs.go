package models

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// CostKey names one entry of the cost table. Method keys share the same
// namespace as the auxiliary action keys.
type CostKey string

const (
	CostLevelUp     CostKey = "level-up"
	CostMachine     CostKey = "machine"
	CostMachineOnce CostKey = "machine-once"
	CostTutor       CostKey = "tutor"
	CostTutorOnce   CostKey = "tutor-once"

	// Sketch doubles as the cost of learning the copy-any-move move and of
	// evolution-trigger moves picked up by normal means.
	CostSketch CostKey = "sketch"

	CostLightBallEgg    CostKey = "light-ball-egg"
	CostStadiumSurfing  CostKey = "stadium-surfing-pikachu"
	CostColosseumPurify CostKey = "colosseum-purification"
	CostShadow          CostKey = "xd-shadow"
	CostShadowPurify    CostKey = "xd-purification"
	CostFormChange      CostKey = "form-change"

	CostEvolution        CostKey = "evolution"
	CostEvolutionDelayed CostKey = "evolution-delayed"
	CostBreed            CostKey = "breed"
	CostTrade            CostKey = "trade"
	CostTransfer         CostKey = "transfer"
	CostForget           CostKey = "forget"
	CostRelearn          CostKey = "relearn"
	CostPerLevel         CostKey = "per-level"
)

// RequiredCostKeys returns every key a complete cost table must define,
// in deterministic order.
func RequiredCostKeys() []CostKey {
	return []CostKey{
		CostLevelUp, CostMachine, CostMachineOnce, CostTutor, CostTutorOnce,
		CostSketch,
		CostLightBallEgg, CostStadiumSurfing,
		CostColosseumPurify, CostShadow, CostShadowPurify, CostFormChange,
		CostEvolution, CostEvolutionDelayed,
		CostBreed, CostTrade, CostTransfer, CostForget, CostRelearn,
		CostPerLevel,
	}
}

// Costs maps cost keys to their numeric cost. The numbers are a proxy for
// in-game annoyance, not a physical metric.
type Costs map[CostKey]int

// DefaultCosts returns the standard cost table.
func DefaultCosts() Costs {
	return Costs{
		CostLevelUp:     20,   // the normal way
		CostMachine:     40,   // machines are slightly inconvenient
		CostMachineOnce: 2000, // single-use machines, avoid
		CostTutor:       60,   // tutors can't be carried around
		CostTutorOnce:   2100, // single-use tutors

		CostSketch: 5,

		CostLightBallEgg:    100,
		CostStadiumSurfing:  100,
		CostColosseumPurify: 100,
		CostShadow:          100,
		CostShadowPurify:    100,
		CostFormChange:      100,

		CostEvolution:        100, // usually has to happen anyway
		CostEvolutionDelayed: 50,  // on top of evolution
		CostBreed:            400, // breeding's a pain
		CostTrade:            200,
		CostTransfer:         200, // on top of trade, one-way cross-generation
		CostForget:           300,
		CostRelearn:          150,
		CostPerLevel:         1, // prefer less grinding
	}
}

// Validate reports a configuration error if any required entry is missing.
func (c Costs) Validate() error {
	var missing []string
	for _, key := range RequiredCostKeys() {
		if _, ok := c[key]; !ok {
			missing = append(missing, string(key))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("cost table missing entries: %v", missing)
	}
	return nil
}

// Of returns the cost for a key. The table must have been validated first;
// a missing key here is a programming error and reports ok=false.
func (c Costs) Of(key CostKey) (int, bool) {
	v, ok := c[key]
	return v, ok
}

// Clone returns an independent copy of the table.
func (c Costs) Clone() Costs {
	out := make(Costs, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// LoadCostsFile reads a YAML cost table from disk. The file replaces the
// defaults wholesale: it must define every required key itself.
func LoadCostsFile(path string) (Costs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]int
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing cost table %s: %w", path, err)
	}
	costs := make(Costs, len(raw))
	for k, v := range raw {
		costs[CostKey(k)] = v
	}
	if err := costs.Validate(); err != nil {
		return nil, err
	}
	return costs, nil
}
