package commands

import (
	"context"

	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/services"
)

// DispatchContainerCommandHandler sends a container from origin toward the
// destination port.
type DispatchContainerCommandHandler struct {
	uowFactory ShipmentUoWFactory
	resolver   services.AuthorityResolver
}

// NewDispatchContainerCommandHandler creates a handler for container
// dispatch.
func NewDispatchContainerCommandHandler(
	uowFactory ShipmentUoWFactory,
	resolver services.AuthorityResolver,
) DispatchContainerCommandHandler {
	return DispatchContainerCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle processes the dispatch command.
func (h *DispatchContainerCommandHandler) Handle(ctx context.Context, cmd DispatchContainerCommand) error {
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

	containerRepo := uow.ContainerRepository()
	aggregate, err := containerRepo.Get(ctx, cmd.ContainerID())
	if err != nil {
		return err
	}

	decision := h.resolver.ResolveContainerTransition(
		ctx, cmd.Actor(), aggregate, container.Dispatched)
	if !decision.Permitted {
		return decision.Err(cmd.Actor())
	}

	if err = aggregate.Dispatch(); err != nil {
		return err
	}

	if err = containerRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
