package commands

import (
	"context"

	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
)

// AssignOperatorCommandHandler writes an operator assignment onto an order.
// Assignment is an administrative act: only admins may change who is in
// charge of a shipment.
type AssignOperatorCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignOperatorCommandHandler creates a handler for operator assignment.
func NewAssignOperatorCommandHandler(uowFactory OrderUoWFactory) AssignOperatorCommandHandler {
	return AssignOperatorCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command. Returns *errs.UnauthorizedError
// when the actor is not an admin.
func (h *AssignOperatorCommandHandler) Handle(ctx context.Context, cmd AssignOperatorCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.Actor().Role != services.RoleAdmin {
		return errs.NewUnauthorizedError(errs.DenyWrongRole, string(cmd.Actor().Role))
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.OperatorRole() == services.RoleSourcingOperator {
		err = aggregate.AssignSourcingOperator(cmd.OperatorID())
	} else {
		err = aggregate.AssignLogisticsOperator(cmd.OperatorID())
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
