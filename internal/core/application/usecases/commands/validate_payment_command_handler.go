package commands

import (
	"context"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
)

// ValidatePaymentCommandHandler confirms a submitted payment, moving the
// order from PaymentSubmitted to Paid.
type ValidatePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   services.AuthorityResolver
}

// NewValidatePaymentCommandHandler creates a handler for payment
// confirmation.
func NewValidatePaymentCommandHandler(
	uowFactory OrderUoWFactory,
	resolver services.AuthorityResolver,
) ValidatePaymentCommandHandler {
	return ValidatePaymentCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle processes the payment confirmation.
func (h *ValidatePaymentCommandHandler) Handle(ctx context.Context, cmd ValidatePaymentCommand) error {
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
		ctx, cmd.Actor(), aggregate, order.Paid, services.PathDirect)
	if !decision.Permitted {
		return decision.Err(cmd.Actor())
	}

	if decision.Override {
		err = aggregate.Override(order.Paid)
	} else {
		err = aggregate.AdvanceTo(order.Paid)
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
