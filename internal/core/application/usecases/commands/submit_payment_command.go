package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrSubmitPaymentCommandIsNotConstructed = errors.New(
		"SubmitPaymentCommand must be created via NewSubmitPaymentCommand constructor",
	)
)

// SubmitPaymentCommand represents a client reporting that payment has been
// sent for an order awaiting payment. The order moves to PaymentSubmitted
// and stays there until an operator confirms or an admin rejects it.
type SubmitPaymentCommand struct { //nolint:recvcheck //using for validation
	actor   services.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSubmitPaymentCommand creates a command to report payment on an order.
func NewSubmitPaymentCommand(
	actor services.Actor,
	orderID kernel.UUID,
) (SubmitPaymentCommand, error) {
	cmd := SubmitPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
	); err != nil {
		return SubmitPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitPaymentCommand) Validate() error {
	return c.guard.Validate(ErrSubmitPaymentCommandIsNotConstructed)
}

// Actor returns the identity and role reporting the payment.
func (c SubmitPaymentCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the order being paid.
func (c SubmitPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *SubmitPaymentCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *SubmitPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
