package commands

import (
	"context"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
)

// ResubmitPaymentCommandHandler moves a rejected order back to
// AwaitingPayment on behalf of the owning client.
type ResubmitPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   services.AuthorityResolver
}

// NewResubmitPaymentCommandHandler creates a handler for payment retries.
func NewResubmitPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	resolver services.AuthorityResolver,
) ResubmitPaymentCommandHandler {
	return ResubmitPaymentCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle processes the payment retry.
func (h *ResubmitPaymentCommandHandler) Handle(ctx context.Context, cmd ResubmitPaymentCommand) error {
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
		ctx, cmd.Actor(), aggregate, order.AwaitingPayment, services.PathPayment)
	if !decision.Permitted {
		return decision.Err(cmd.Actor())
	}

	if err = aggregate.ResubmitPayment(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
