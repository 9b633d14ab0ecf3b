package models

import "fmt"

// MoveID identifies a move. IDs come from the data store and are opaque
// to the solver.
type MoveID int

// CreatureID identifies a creature.
type CreatureID int

// LineageID identifies an evolutionary family of creatures.
type LineageID int

// GroupID identifies a breeding group.
type GroupID int

// VersionGroupID identifies a set of game releases sharing game data.
type VersionGroupID int

// LearnMethod is how a creature acquires a move. The enumeration is closed:
// a record with any other method is a data-consistency fault.
type LearnMethod string

const (
	MethodLevelUp LearnMethod = "level-up"
	MethodMachine LearnMethod = "machine"
	MethodTutor   LearnMethod = "tutor"
	MethodEgg     LearnMethod = "egg"

	// Gimmick methods tied to a single game mechanic.
	MethodLightBallEgg     LearnMethod = "light-ball-egg"
	MethodStadiumSurfing   LearnMethod = "stadium-surfing-pikachu"
	MethodColosseumPurify  LearnMethod = "colosseum-purification"
	MethodShadow           LearnMethod = "xd-shadow"
	MethodShadowPurify     LearnMethod = "xd-purification"
	MethodFormChange       LearnMethod = "form-change"

	// MethodRelearn is not a data-store method; it labels actions where a
	// level-up move is recovered from the recall service instead of leveling.
	MethodRelearn LearnMethod = "relearn"
)

// AllMethods returns every method that may appear in a learn record, in
// deterministic order.
func AllMethods() []LearnMethod {
	return []LearnMethod{
		MethodLevelUp, MethodMachine, MethodTutor, MethodEgg,
		MethodLightBallEgg, MethodStadiumSurfing,
		MethodColosseumPurify, MethodShadow, MethodShadowPurify,
		MethodFormChange,
	}
}

// Known reports whether the method is part of the closed enumeration of
// data-store methods.
func (m LearnMethod) Known() bool {
	switch m {
	case MethodLevelUp, MethodMachine, MethodTutor, MethodEgg,
		MethodLightBallEgg, MethodStadiumSurfing,
		MethodColosseumPurify, MethodShadow, MethodShadowPurify,
		MethodFormChange:
		return true
	}
	return false
}

// Action is one step of a solution path.
type Action interface {
	Keyword() string
	String() string
}

// StartAction begins a path with a specific creature in a specific version
// group.
type StartAction struct {
	Creature     CreatureID
	VersionGroup VersionGroupID
}

// Keyword returns the action kind.
func (a StartAction) Keyword() string { return "start" }

func (a StartAction) String() string {
	return fmt.Sprintf("start creature %d in version group %d", a.Creature, a.VersionGroup)
}

// LearnAction acquires a move by a specific method.
type LearnAction struct {
	Move   MoveID
	Method LearnMethod
}

// Keyword returns the action kind.
func (a LearnAction) Keyword() string { return "learn" }

func (a LearnAction) String() string {
	return fmt.Sprintf("learn move %d via %s", a.Move, a.Method)
}

// ForgetAction drops a known move to free a slot.
type ForgetAction struct {
	Move MoveID
}

// Keyword returns the action kind.
func (a ForgetAction) Keyword() string { return "forget" }

func (a ForgetAction) String() string {
	return fmt.Sprintf("forget move %d", a.Move)
}

// ResultPath is one complete, optimal way of reaching the goal moveset.
type ResultPath struct {
	Actions   []Action
	TotalCost int
}
