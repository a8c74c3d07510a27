package commands

import (
	"context"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
)

// SubmitPaymentCommandHandler moves an order from AwaitingPayment to
// PaymentSubmitted on behalf of the owning client. This is the only write
// a client can perform on an order besides the retry after rejection.
type SubmitPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   services.AuthorityResolver
}

// NewSubmitPaymentCommandHandler creates a handler for payment submission.
func NewSubmitPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	resolver services.AuthorityResolver,
) SubmitPaymentCommandHandler {
	return SubmitPaymentCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle processes the payment submission.
func (h *SubmitPaymentCommandHandler) Handle(ctx context.Context, cmd SubmitPaymentCommand) error {
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
		ctx, cmd.Actor(), aggregate, order.PaymentSubmitted, services.PathPayment)
	if !decision.Permitted {
		return decision.Err(cmd.Actor())
	}

	if err = aggregate.SubmitPayment(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
