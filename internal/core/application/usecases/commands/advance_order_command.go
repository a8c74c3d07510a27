package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrAdvanceOrderCommandIsNotConstructed = errors.New(
		"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
	)
)

// AdvanceOrderCommand represents a request to move an order to a target
// lifecycle state on behalf of an acting role. This is the single entry
// point for all direct order state writes: operators advancing the chain,
// admins forcing an override (including the soft payment rejection to
// Rejected).
//
// Client payment moves do not go through this command; see
// SubmitPaymentCommand and ResubmitPaymentCommand.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	actor   services.Actor
	orderID kernel.UUID
	target  order.State

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order. Validates
// the actor identity, order id, and that the target is a defined state code.
func NewAdvanceOrderCommand(
	actor services.Actor,
	orderID kernel.UUID,
	target order.State,
) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// Actor returns the identity and role requesting the transition.
func (c AdvanceOrderCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the order to advance.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested target state.
func (c AdvanceOrderCommand) Target() order.State {
	return c.target
}

func (c *AdvanceOrderCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setTarget(target order.State) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
