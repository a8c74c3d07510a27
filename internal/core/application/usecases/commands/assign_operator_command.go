package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrAssignOperatorCommandIsNotConstructed = errors.New(
		"AssignOperatorCommand must be created via NewAssignOperatorCommand constructor",
	)
)

// AssignOperatorCommand represents an admin putting a sourcing or logistics
// operator in charge of an order. The operator role selects which assignment
// slot receives the id.
type AssignOperatorCommand struct { //nolint:recvcheck //using for validation
	actor        services.Actor
	orderID      kernel.UUID
	operatorID   kernel.UUID
	operatorRole services.Role

	guard guard.ConstructorGuard
}

// NewAssignOperatorCommand creates a command to assign an operator to an
// order. The operator role must be sourcing-operator or logistics-operator.
func NewAssignOperatorCommand(
	actor services.Actor,
	orderID kernel.UUID,
	operatorID kernel.UUID,
	operatorRole services.Role,
) (AssignOperatorCommand, error) {
	cmd := AssignOperatorCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setOperatorID(operatorID),
		cmd.setOperatorRole(operatorRole),
	); err != nil {
		return AssignOperatorCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOperatorCommand) Validate() error {
	return c.guard.Validate(ErrAssignOperatorCommandIsNotConstructed)
}

// Actor returns the identity and role requesting the assignment.
func (c AssignOperatorCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the order receiving the assignment.
func (c AssignOperatorCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OperatorID returns the operator being assigned.
func (c AssignOperatorCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

// OperatorRole returns which assignment slot the operator takes.
func (c AssignOperatorCommand) OperatorRole() services.Role {
	return c.operatorRole
}

func (c *AssignOperatorCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AssignOperatorCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignOperatorCommand) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	c.operatorID = operatorID
	return nil
}

func (c *AssignOperatorCommand) setOperatorRole(operatorRole services.Role) error {
	if operatorRole != services.RoleSourcingOperator &&
		operatorRole != services.RoleLogisticsOperator {
		return errs.NewValueIsInvalidError("operatorRole")
	}

	c.operatorRole = operatorRole
	return nil
}
