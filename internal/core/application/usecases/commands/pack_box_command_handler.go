package commands

import (
	"context"

	"freight/internal/core/domain/model/box"
	"freight/internal/core/domain/services"
)

// PackBoxCommandHandler closes a box against further attachments.
type PackBoxCommandHandler struct {
	uowFactory ShipmentUoWFactory
	resolver   services.AuthorityResolver
}

// NewPackBoxCommandHandler creates a handler for box packing.
func NewPackBoxCommandHandler(
	uowFactory ShipmentUoWFactory,
	resolver services.AuthorityResolver,
) PackBoxCommandHandler {
	return PackBoxCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle processes the pack command.
func (h *PackBoxCommandHandler) Handle(ctx context.Context, cmd PackBoxCommand) error {
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

	decision := h.resolver.ResolveBoxTransition(ctx, cmd.Actor(), aggregate, box.Packed)
	if !decision.Permitted {
		return decision.Err(cmd.Actor())
	}

	if err = aggregate.Pack(); err != nil {
		return err
	}

	if err = boxRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
