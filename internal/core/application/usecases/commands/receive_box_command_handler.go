package commands

import (
	"context"

	"freight/internal/core/domain/model/box"
	"freight/internal/core/domain/services"
)

// ReceiveBoxCommandHandler marks a box received at the local warehouse. The
// aggregate itself enforces the container ordering: a boxed-in-container
// shipment can only be received after its container was.
type ReceiveBoxCommandHandler struct {
	uowFactory ShipmentUoWFactory
	resolver   services.AuthorityResolver
}

// NewReceiveBoxCommandHandler creates a handler for box receipt.
func NewReceiveBoxCommandHandler(
	uowFactory ShipmentUoWFactory,
	resolver services.AuthorityResolver,
) ReceiveBoxCommandHandler {
	return ReceiveBoxCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle processes the box receipt.
func (h *ReceiveBoxCommandHandler) Handle(ctx context.Context, cmd ReceiveBoxCommand) error {
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

	boxRepo := uow.BoxRepository()
	aggregate, err := boxRepo.Get(ctx, cmd.BoxID())
	if err != nil {
		return err
	}

	decision := h.resolver.ResolveBoxTransition(ctx, cmd.Actor(), aggregate, box.Received)
	if !decision.Permitted {
		return decision.Err(cmd.Actor())
	}

	if err = aggregate.Receive(); err != nil {
		return err
	}

	if err = boxRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
