package container

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrContainerIsNotConstructed is returned when a Container instance was
	// not created through NewContainer or RestoreContainer.
	ErrContainerIsNotConstructed = errors.New(
		"Container must be created via NewContainer or RestoreContainer constructor")
)

// Container represents the largest consolidation unit, grouping boxes for
// ocean or air transit. Boxes reference the container by id
// (Box.containerID); the container holds no box pointers.
//
// Invariants:
//   - State never regresses; Received is terminal
//   - A container cannot be marked received while any member box is still
//     open (enforced by the receiving command, which sees the boxes)
type Container struct {
	// id is the unique identifier for the container
	id kernel.UUID

	// state is the current position in the container lifecycle
	state State

	// version is the last-modified marker
	version int64

	// isConstructed ensures the container was created via a constructor
	isConstructed bool
}

// NewContainer creates a new container ready to be loaded with boxes.
func NewContainer(id kernel.UUID) (*Container, error) {
	c := &Container{
		state:         New,
		version:       1,
		isConstructed: true,
	}

	if err := c.setID(id); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreContainer reconstructs a Container from persistence, validating the
// stored state code and version marker.
func RestoreContainer(id kernel.UUID, state State, version int64) (*Container, error) {
	c := &Container{
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setState(state),
		c.setVersion(version),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Container was properly constructed through a
// constructor.
func (c *Container) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrContainerIsNotConstructed
	}
	return nil
}

// IsEqual compares two containers by their unique identifiers.
func (c *Container) IsEqual(other *Container) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the container's unique identifier.
func (c *Container) ID() kernel.UUID {
	return c.id
}

// State returns the current lifecycle state.
func (c *Container) State() State {
	return c.state
}

// Version returns the last-modified marker.
func (c *Container) Version() int64 {
	return c.version
}

// Dispatch sends the container on its transit leg (New -> Dispatched).
func (c *Container) Dispatch() error {
	return c.advanceTo(Dispatched)
}

// Receive marks the container as arrived (Dispatched -> Received). The
// caller is responsible for verifying no member box is still open before
// invoking this, and for cascading ContainerReceived onto member boxes after.
func (c *Container) Receive() error {
	return c.advanceTo(Received)
}

func (c *Container) advanceTo(target State) error {
	newState, err := c.state.TransitionTo(target)
	if err != nil {
		return err
	}

	c.state = newState
	c.touch()
	return nil
}

func (c *Container) touch() {
	c.version++
}

func (c *Container) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Container) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	c.state = state
	return nil
}

func (c *Container) setVersion(version int64) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("version",
			fmt.Errorf("%d is not a positive version", version))
	}
	c.version = version
	return nil
}
