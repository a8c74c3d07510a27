package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrAssignBoxToContainerCommandIsNotConstructed = errors.New(
		"AssignBoxToContainerCommand must be created via NewAssignBoxToContainerCommand constructor",
	)
)

// AssignBoxToContainerCommand represents loading a box into a shipping
// container. The container must not have been dispatched yet.
type AssignBoxToContainerCommand struct { //nolint:recvcheck //using for validation
	actor       services.Actor
	boxID       kernel.UUID
	containerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignBoxToContainerCommand creates a command to load a box into a
// container.
func NewAssignBoxToContainerCommand(
	actor services.Actor,
	boxID kernel.UUID,
	containerID kernel.UUID,
) (AssignBoxToContainerCommand, error) {
	cmd := AssignBoxToContainerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setBoxID(boxID),
		cmd.setContainerID(containerID),
	); err != nil {
		return AssignBoxToContainerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignBoxToContainerCommand) Validate() error {
	return c.guard.Validate(ErrAssignBoxToContainerCommandIsNotConstructed)
}

// Actor returns the identity and role loading the box.
func (c AssignBoxToContainerCommand) Actor() services.Actor {
	return c.actor
}

// BoxID returns the box being loaded.
func (c AssignBoxToContainerCommand) BoxID() kernel.UUID {
	return c.boxID
}

// ContainerID returns the receiving container.
func (c AssignBoxToContainerCommand) ContainerID() kernel.UUID {
	return c.containerID
}

func (c *AssignBoxToContainerCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AssignBoxToContainerCommand) setBoxID(boxID kernel.UUID) error {
	if err := boxID.Validate(); err != nil {
		return err
	}

	c.boxID = boxID
	return nil
}

func (c *AssignBoxToContainerCommand) setContainerID(containerID kernel.UUID) error {
	if err := containerID.Validate(); err != nil {
		return err
	}

	c.containerID = containerID
	return nil
}
