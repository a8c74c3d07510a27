package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrValidatePaymentCommandIsNotConstructed = errors.New(
		"ValidatePaymentCommand must be created via NewValidatePaymentCommand constructor",
	)
)

// ValidatePaymentCommand represents an operator confirming that a submitted
// payment cleared. The order moves from PaymentSubmitted to Paid.
type ValidatePaymentCommand struct { //nolint:recvcheck //using for validation
	actor   services.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewValidatePaymentCommand creates a command to confirm a payment.
func NewValidatePaymentCommand(
	actor services.Actor,
	orderID kernel.UUID,
) (ValidatePaymentCommand, error) {
	cmd := ValidatePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
	); err != nil {
		return ValidatePaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ValidatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrValidatePaymentCommandIsNotConstructed)
}

// Actor returns the identity and role confirming the payment.
func (c ValidatePaymentCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the order whose payment is confirmed.
func (c ValidatePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *ValidatePaymentCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ValidatePaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
