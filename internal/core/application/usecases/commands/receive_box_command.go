package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrReceiveBoxCommandIsNotConstructed = errors.New(
		"ReceiveBoxCommand must be created via NewReceiveBoxCommand constructor",
	)
)

// ReceiveBoxCommand represents confirming a box's arrival at the local
// warehouse. A boxed shipment arrives through its container; a box that
// never entered a container arrives on its own.
type ReceiveBoxCommand struct { //nolint:recvcheck //using for validation
	actor services.Actor
	boxID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReceiveBoxCommand creates a command to receive a box.
func NewReceiveBoxCommand(
	actor services.Actor,
	boxID kernel.UUID,
) (ReceiveBoxCommand, error) {
	cmd := ReceiveBoxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setBoxID(boxID),
	); err != nil {
		return ReceiveBoxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveBoxCommand) Validate() error {
	return c.guard.Validate(ErrReceiveBoxCommandIsNotConstructed)
}

// Actor returns the identity and role receiving the box.
func (c ReceiveBoxCommand) Actor() services.Actor {
	return c.actor
}

// BoxID returns the arriving box.
func (c ReceiveBoxCommand) BoxID() kernel.UUID {
	return c.boxID
}

func (c *ReceiveBoxCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ReceiveBoxCommand) setBoxID(boxID kernel.UUID) error {
	if err := boxID.Validate(); err != nil {
		return err
	}

	c.boxID = boxID
	return nil
}
