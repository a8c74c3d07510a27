package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrReceiveContainerCommandIsNotConstructed = errors.New(
		"ReceiveContainerCommand must be created via NewReceiveContainerCommand constructor",
	)
)

// ReceiveContainerCommand represents confirming a container's arrival at the
// destination warehouse. Receipt cascades to every box on the manifest.
type ReceiveContainerCommand struct { //nolint:recvcheck //using for validation
	actor       services.Actor
	containerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReceiveContainerCommand creates a command to receive a container.
func NewReceiveContainerCommand(
	actor services.Actor,
	containerID kernel.UUID,
) (ReceiveContainerCommand, error) {
	cmd := ReceiveContainerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setContainerID(containerID),
	); err != nil {
		return ReceiveContainerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveContainerCommand) Validate() error {
	return c.guard.Validate(ErrReceiveContainerCommandIsNotConstructed)
}

// Actor returns the identity and role receiving the container.
func (c ReceiveContainerCommand) Actor() services.Actor {
	return c.actor
}

// ContainerID returns the arriving container.
func (c ReceiveContainerCommand) ContainerID() kernel.UUID {
	return c.containerID
}

func (c *ReceiveContainerCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ReceiveContainerCommand) setContainerID(containerID kernel.UUID) error {
	if err := containerID.Validate(); err != nil {
		return err
	}

	c.containerID = containerID
	return nil
}
