package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrResubmitPaymentCommandIsNotConstructed = errors.New(
		"ResubmitPaymentCommand must be created via NewResubmitPaymentCommand constructor",
	)
)

// ResubmitPaymentCommand represents a client retrying payment after a
// rejection. The order moves from Rejected back to AwaitingPayment; this
// is the only backward edge the lifecycle permits.
type ResubmitPaymentCommand struct { //nolint:recvcheck //using for validation
	actor   services.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResubmitPaymentCommand creates a command to retry payment on a
// rejected order.
func NewResubmitPaymentCommand(
	actor services.Actor,
	orderID kernel.UUID,
) (ResubmitPaymentCommand, error) {
	cmd := ResubmitPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
	); err != nil {
		return ResubmitPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResubmitPaymentCommand) Validate() error {
	return c.guard.Validate(ErrResubmitPaymentCommandIsNotConstructed)
}

// Actor returns the identity and role retrying the payment.
func (c ResubmitPaymentCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the rejected order.
func (c ResubmitPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *ResubmitPaymentCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ResubmitPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
