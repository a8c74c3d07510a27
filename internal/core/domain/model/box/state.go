package box

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// State represents the lifecycle state of a consolidation box. The same
// monotonic-forward rule as the order lifecycle applies; a box never
// regresses.
//
// State transitions:
//
//	New ──> Packed ──┬──> ContainerReceived ──> Received
//	                 └──> Received (box without a container)
//
// ContainerReceived is set on every packed box of a container at the moment
// the container is marked received; requiring passage through it is what
// keeps a box from being received before its container.
type State int

const (
	// Unknown represents an invalid or undefined state (0).
	Unknown State = 0

	// New is the initial state: an open box accepting orders.
	New State = 1

	// Packed means the box is closed for its shipment leg.
	Packed State = 2

	// ContainerReceived means the box's parent container has been marked
	// received at destination.
	ContainerReceived State = 5

	// Received is the terminal state: the box arrived and was checked in.
	Received State = 6
)

const entityKind = "box"

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:           "Unknown",
		New:               "New",
		Packed:            "Packed",
		ContainerReceived: "ContainerReceived",
		Received:          "Received",
	}
}

func getSuccessors() map[State][]State {
	return map[State][]State{
		New:               {Packed},
		Packed:            {ContainerReceived, Received},
		ContainerReceived: {Received},
		Received:          {},
	}
}

// Validate checks that the state is one of the defined box codes.
func (s State) Validate() error {
	if _, ok := getSuccessors()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("%d is not a valid box state", s))
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
