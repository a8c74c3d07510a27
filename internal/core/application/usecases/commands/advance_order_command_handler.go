package commands

import (
	"context"

	"freight/internal/core/domain/services"
)

// AdvanceOrderCommandHandler applies a direct state-write request to an
// order: authority resolution first, then the state machine, then
// transactional persistence. An admin decision takes the override path,
// bypassing the successor table.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   services.AuthorityResolver
}

// NewAdvanceOrderCommandHandler creates a handler for order advancement.
func NewAdvanceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	resolver services.AuthorityResolver,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle processes the advancement command. Returns *errs.UnauthorizedError
// when the actor lacks authority and *errs.InvalidTransitionError when the
// target is not the defined successor of the current state.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
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

	decision := h.resolver.ResolveOrderTransition(
		ctx, cmd.Actor(), aggregate, cmd.Target(), services.PathDirect)
	if !decision.Permitted {
		return decision.Err(cmd.Actor())
	}

	if decision.Override {
		err = aggregate.Override(cmd.Target())
	} else {
		err = aggregate.AdvanceTo(cmd.Target())
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
