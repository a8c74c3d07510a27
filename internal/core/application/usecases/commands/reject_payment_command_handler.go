package commands

import (
	"context"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
)

// RejectPaymentCommandHandler declines a submitted payment, dropping the
// order from PaymentSubmitted to Rejected. The forward successor table has
// no edge into Rejected, so the handler writes the state through the
// override path once authority is confirmed.
type RejectPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   services.AuthorityResolver
}

// NewRejectPaymentCommandHandler creates a handler for payment rejection.
func NewRejectPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	resolver services.AuthorityResolver,
) RejectPaymentCommandHandler {
	return RejectPaymentCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle processes the payment rejection.
func (h *RejectPaymentCommandHandler) Handle(ctx context.Context, cmd RejectPaymentCommand) error {
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
		ctx, cmd.Actor(), aggregate, order.Rejected, services.PathDirect)
	if !decision.Permitted {
		return decision.Err(cmd.Actor())
	}

	if err = aggregate.Override(order.Rejected); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
