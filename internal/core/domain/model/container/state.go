package container

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// State represents the lifecycle state of a shipping container. Containers
// are the top-level consolidation unit; the codes match the rest of the
// system's canonical integer scheme.
//
// State transitions:
//
//	New ──> Dispatched ──> Received
//
// Received is terminal.
type State int

const (
	// Unknown represents an invalid or undefined state (0).
	Unknown State = 0

	// New is the initial state: the container is being loaded with boxes.
	New State = 1

	// Dispatched means the container left on its ocean or air leg.
	Dispatched State = 3

	// Received is the terminal state: the container arrived at destination.
	Received State = 4
)

const entityKind = "container"

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:    "Unknown",
		New:        "New",
		Dispatched: "Dispatched",
		Received:   "Received",
	}
}

func getSuccessors() map[State][]State {
	return map[State][]State{
		New:        {Dispatched},
		Dispatched: {Received},
		Received:   {},
	}
}

// Validate checks that the state is one of the defined container codes.
func (s State) Validate() error {
	if _, ok := getSuccessors()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("%d is not a valid container state", s))
	}
	return nil
}

// String returns the human-readable name of the state.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are defined from s.
func (s State) IsTerminal() bool {
	return s == Received
}

// Successors returns the defined successor states of s.
func (s State) Successors() []State {
	return getSuccessors()[s]
}

// CanTransitionTo reports whether target is a defined successor of s.
func (s State) CanTransitionTo(target State) bool {
	for _, next := range getSuccessors()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and applies a transition to target, returning
// *errs.InvalidTransitionError for anything outside the successor table.
func (s State) TransitionTo(target State) (State, error) {
	if err := s.Validate(); err != nil {
		return 0, errs.NewInvalidTransitionErrorWithCause(entityKind, s.String(), target.String(), err)
	}
	if !s.CanTransitionTo(target) {
		return 0, errs.NewInvalidTransitionError(entityKind, s.String(), target.String())
	}
	return target, nil
}
