package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrPackBoxCommandIsNotConstructed = errors.New(
		"PackBoxCommand must be created via NewPackBoxCommand constructor",
	)
)

// PackBoxCommand represents closing a box at the warehouse. A packed box no
// longer accepts order attachments or container changes.
type PackBoxCommand struct { //nolint:recvcheck //using for validation
	actor services.Actor
	boxID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPackBoxCommand creates a command to pack a box.
func NewPackBoxCommand(
	actor services.Actor,
	boxID kernel.UUID,
) (PackBoxCommand, error) {
	cmd := PackBoxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setBoxID(boxID),
	); err != nil {
		return PackBoxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PackBoxCommand) Validate() error {
	return c.guard.Validate(ErrPackBoxCommandIsNotConstructed)
}

// Actor returns the identity and role packing the box.
func (c PackBoxCommand) Actor() services.Actor {
	return c.actor
}

// BoxID returns the box being packed.
func (c PackBoxCommand) BoxID() kernel.UUID {
	return c.boxID
}

func (c *PackBoxCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *PackBoxCommand) setBoxID(boxID kernel.UUID) error {
	if err := boxID.Validate(); err != nil {
		return err
	}

	c.boxID = boxID
	return nil
}
