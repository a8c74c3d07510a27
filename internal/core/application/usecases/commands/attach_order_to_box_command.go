package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrAttachOrderToBoxCommandIsNotConstructed = errors.New(
		"AttachOrderToBoxCommand must be created via NewAttachOrderToBoxCommand constructor",
	)
)

// AttachOrderToBoxCommand represents placing a shipped order's goods into a
// consolidation box. The box must still be open and the order must have
// reached the shipment leg.
type AttachOrderToBoxCommand struct { //nolint:recvcheck //using for validation
	actor   services.Actor
	orderID kernel.UUID
	boxID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAttachOrderToBoxCommand creates a command to attach an order to a box.
func NewAttachOrderToBoxCommand(
	actor services.Actor,
	orderID kernel.UUID,
	boxID kernel.UUID,
) (AttachOrderToBoxCommand, error) {
	cmd := AttachOrderToBoxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setBoxID(boxID),
	); err != nil {
		return AttachOrderToBoxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachOrderToBoxCommand) Validate() error {
	return c.guard.Validate(ErrAttachOrderToBoxCommandIsNotConstructed)
}

// Actor returns the identity and role making the attachment.
func (c AttachOrderToBoxCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the order being boxed.
func (c AttachOrderToBoxCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BoxID returns the receiving box.
func (c AttachOrderToBoxCommand) BoxID() kernel.UUID {
	return c.boxID
}

func (c *AttachOrderToBoxCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AttachOrderToBoxCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AttachOrderToBoxCommand) setBoxID(boxID kernel.UUID) error {
	if err := boxID.Validate(); err != nil {
		return err
	}

	c.boxID = boxID
	return nil
}
