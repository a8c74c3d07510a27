package box

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrBoxIsNotConstructed is returned when a Box instance was not created
	// through NewBox or RestoreBox.
	ErrBoxIsNotConstructed = errors.New("Box must be created via NewBox or RestoreBox constructor")

	// ErrBoxAlreadyClosed is returned when attempting to attach a packed or
	// received box to a container.
	ErrBoxAlreadyClosed = errors.New("box is already past packing and cannot change container")
)

// Box represents a physical carton consolidating multiple orders for a
// single shipment leg. Orders reference the box by id (Order.boxID); the box
// itself holds no order pointers, keeping cross-entity ownership acyclic.
//
// Invariants:
//   - State never regresses
//   - A box belongs to at most one container, chosen before packing completes
//   - A box with a container can only be received after the container
//     (passage through ContainerReceived)
//
// Boxes are retained indefinitely as shipment history.
type Box struct {
	// id is the unique identifier for the box
	id kernel.UUID

	// containerID references the parent container, nil while unassigned
	containerID *kernel.UUID

	// state is the current position in the box lifecycle
	state State

	// version is the last-modified marker
	version int64

	// isConstructed ensures the box was created via a constructor
	isConstructed bool
}

// NewBox creates an open box ready to consolidate orders.
func NewBox(id kernel.UUID) (*Box, error) {
	b := &Box{
		state:         New,
		version:       1,
		isConstructed: true,
	}

	if err := b.setID(id); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBox reconstructs a Box from persistence, validating the stored
// state code and version marker.
func RestoreBox(id kernel.UUID, state State, containerID *kernel.UUID, version int64) (*Box, error) {
	b := &Box{
		containerID:   containerID,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setState(state),
		b.setVersion(version),
	); err != nil {
		return nil, err
	}

	if containerID != nil {
		if err := containerID.Validate(); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Validate ensures the Box was properly constructed through a constructor.
func (b *Box) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBoxIsNotConstructed
	}
	return nil
}

// IsEqual compares two boxes by their unique identifiers.
func (b *Box) IsEqual(other *Box) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the box's unique identifier.
func (b *Box) ID() kernel.UUID {
	return b.id
}

// Container returns the parent container's ID, or nil while unassigned.
func (b *Box) Container() *kernel.UUID {
	return b.containerID
}

// State returns the current lifecycle state.
func (b *Box) State() State {
	return b.state
}

// Version returns the last-modified marker.
func (b *Box) Version() int64 {
	return b.version
}

// AssignToContainer attaches the box to a container. Only an open or
// freshly-packed box may change container; after that the physical shipment
// has started and the relationship is fixed.
func (b *Box) AssignToContainer(containerID kernel.UUID) error {
	if err := containerID.Validate(); err != nil {
		return err
	}

	if b.state > Packed {
		return ErrBoxAlreadyClosed
	}

	b.containerID = &containerID
	b.touch()
	return nil
}

// Pack closes the box for its shipment leg (New -> Packed).
func (b *Box) Pack() error {
	return b.advanceTo(Packed)
}

// MarkContainerReceived records that the parent container arrived
// (Packed -> ContainerReceived). Only meaningful for boxes with a container.
func (b *Box) MarkContainerReceived() error {
	if b.containerID == nil {
		return errs.NewValueIsRequiredError("containerId")
	}
	return b.advanceTo(ContainerReceived)
}

// Receive checks the box in at the local warehouse. A box with a container
// must have passed through ContainerReceived first; a standalone box goes
// straight from Packed to Received.
func (b *Box) Receive() error {
	if b.containerID != nil && b.state == Packed {
		return errs.NewInvalidTransitionErrorWithCause(entityKind, b.state.String(), Received.String(),
			fmt.Errorf("container %s has not been received", b.containerID))
	}
	return b.advanceTo(Received)
}

func (b *Box) advanceTo(target State) error {
	newState, err := b.state.TransitionTo(target)
	if err != nil {
		return err
	}

	b.state = newState
	b.touch()
	return nil
}

func (b *Box) touch() {
	b.version++
}

func (b *Box) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Box) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	b.state = state
	return nil
}

func (b *Box) setVersion(version int64) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("version",
			fmt.Errorf("%d is not a positive version", version))
	}
	b.version = version
	return nil
}
