package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrDispatchContainerCommandIsNotConstructed = errors.New(
		"DispatchContainerCommand must be created via NewDispatchContainerCommand constructor",
	)
)

// DispatchContainerCommand represents sending a loaded container on its way.
type DispatchContainerCommand struct { //nolint:recvcheck //using for validation
	actor       services.Actor
	containerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchContainerCommand creates a command to dispatch a container.
func NewDispatchContainerCommand(
	actor services.Actor,
	containerID kernel.UUID,
) (DispatchContainerCommand, error) {
	cmd := DispatchContainerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setContainerID(containerID),
	); err != nil {
		return DispatchContainerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchContainerCommand) Validate() error {
	return c.guard.Validate(ErrDispatchContainerCommandIsNotConstructed)
}

// Actor returns the identity and role dispatching the container.
func (c DispatchContainerCommand) Actor() services.Actor {
	return c.actor
}

// ContainerID returns the container being dispatched.
func (c DispatchContainerCommand) ContainerID() kernel.UUID {
	return c.containerID
}

func (c *DispatchContainerCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *DispatchContainerCommand) setContainerID(containerID kernel.UUID) error {
	if err := containerID.Validate(); err != nil {
		return err
	}

	c.containerID = containerID
	return nil
}
