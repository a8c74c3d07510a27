package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrCreateBoxCommandIsNotConstructed = errors.New(
		"CreateBoxCommand must be created via NewCreateBoxCommand constructor",
	)
)

// CreateBoxCommand represents opening a new consolidation box at the
// warehouse. A fresh box accepts order attachments until it is packed.
type CreateBoxCommand struct { //nolint:recvcheck //using for validation
	actor services.Actor
	boxID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateBoxCommand creates a command to open a box.
func NewCreateBoxCommand(
	actor services.Actor,
	boxID kernel.UUID,
) (CreateBoxCommand, error) {
	cmd := CreateBoxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setBoxID(boxID),
	); err != nil {
		return CreateBoxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBoxCommand) Validate() error {
	return c.guard.Validate(ErrCreateBoxCommandIsNotConstructed)
}

// Actor returns the identity and role opening the box.
func (c CreateBoxCommand) Actor() services.Actor {
	return c.actor
}

// BoxID returns the identifier for the new box.
func (c CreateBoxCommand) BoxID() kernel.UUID {
	return c.boxID
}

func (c *CreateBoxCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateBoxCommand) setBoxID(boxID kernel.UUID) error {
	if err := boxID.Validate(); err != nil {
		return err
	}

	c.boxID = boxID
	return nil
}
