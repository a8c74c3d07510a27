package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrCreateContainerCommandIsNotConstructed = errors.New(
		"CreateContainerCommand must be created via NewCreateContainerCommand constructor",
	)
)

// CreateContainerCommand represents opening a new shipping container. A
// fresh container accepts packed boxes until it is dispatched.
type CreateContainerCommand struct { //nolint:recvcheck //using for validation
	actor       services.Actor
	containerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateContainerCommand creates a command to open a container.
func NewCreateContainerCommand(
	actor services.Actor,
	containerID kernel.UUID,
) (CreateContainerCommand, error) {
	cmd := CreateContainerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setContainerID(containerID),
	); err != nil {
		return CreateContainerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateContainerCommand) Validate() error {
	return c.guard.Validate(ErrCreateContainerCommandIsNotConstructed)
}

// Actor returns the identity and role opening the container.
func (c CreateContainerCommand) Actor() services.Actor {
	return c.actor
}

// ContainerID returns the identifier for the new container.
func (c CreateContainerCommand) ContainerID() kernel.UUID {
	return c.containerID
}

func (c *CreateContainerCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateContainerCommand) setContainerID(containerID kernel.UUID) error {
	if err := containerID.Validate(); err != nil {
		return err
	}

	c.containerID = containerID
	return nil
}
