package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrRejectPaymentCommandIsNotConstructed = errors.New(
		"RejectPaymentCommand must be created via NewRejectPaymentCommand constructor",
	)
)

// RejectPaymentCommand represents an operator declining a submitted payment.
// The order drops to Rejected, from which the client may retry. Rejection is
// a soft status change, never a deletion.
type RejectPaymentCommand struct { //nolint:recvcheck //using for validation
	actor   services.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectPaymentCommand creates a command to decline a payment.
func NewRejectPaymentCommand(
	actor services.Actor,
	orderID kernel.UUID,
) (RejectPaymentCommand, error) {
	cmd := RejectPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
	); err != nil {
		return RejectPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRejectPaymentCommandIsNotConstructed)
}

// Actor returns the identity and role declining the payment.
func (c RejectPaymentCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the order whose payment is declined.
func (c RejectPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RejectPaymentCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *RejectPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
