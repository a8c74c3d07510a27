package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/box"
	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
)

// ReceiveContainerCommandHandler confirms a container's arrival and cascades
// the receipt onto its boxes. A container cannot be received while any of
// its boxes is still open: every box on the manifest must have been packed
// before the container left origin.
type ReceiveContainerCommandHandler struct {
	uowFactory ShipmentUoWFactory
	resolver   services.AuthorityResolver
}

// NewReceiveContainerCommandHandler creates a handler for container receipt.
func NewReceiveContainerCommandHandler(
	uowFactory ShipmentUoWFactory,
	resolver services.AuthorityResolver,
) ReceiveContainerCommandHandler {
	return ReceiveContainerCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle processes the container receipt. The container transition and the
// cascading box updates commit atomically.
func (h *ReceiveContainerCommandHandler) Handle(ctx context.Context, cmd ReceiveContainerCommand) error {
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
		ctx, cmd.Actor(), aggregate, container.Received)
	if !decision.Permitted {
		return decision.Err(cmd.Actor())
	}

	boxRepo := uow.BoxRepository()
	boxes, err := boxRepo.GetAllByContainer(ctx, cmd.ContainerID())
	if err != nil {
		return err
	}

	for _, b := range boxes {
		if b.State() == box.New {
			return errs.NewInvalidTransitionErrorWithCause(
				"container", aggregate.State().String(), container.Received.String(),
				fmt.Errorf("box %s is still open", b.ID()))
		}
	}

	if err = aggregate.Receive(); err != nil {
		return err
	}

	for _, b := range boxes {
		if b.State() != box.Packed {
			continue
		}
		if err = b.MarkContainerReceived(); err != nil {
			return err
		}
		if err = boxRepo.Update(ctx, b); err != nil {
			return err
		}
	}

	if err = containerRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
