package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/container"
	"freight/internal/pkg/errs"
)

// AssignBoxToContainerCommandHandler loads a box into a container. The
// container must still be at origin; once dispatched its manifest is fixed.
type AssignBoxToContainerCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewAssignBoxToContainerCommandHandler creates a handler for box loading.
func NewAssignBoxToContainerCommandHandler(
	uowFactory ShipmentUoWFactory,
) AssignBoxToContainerCommandHandler {
	return AssignBoxToContainerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the loading command.
func (h *AssignBoxToContainerCommandHandler) Handle(
	ctx context.Context,
	cmd AssignBoxToContainerCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := requireLogisticsSide(cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	containerAggregate, err := uow.ContainerRepository().Get(ctx, cmd.ContainerID())
	if err != nil {
		return err
	}

	if containerAggregate.State() != container.New {
		return errs.NewValueIsInvalidErrorWithCause("containerId",
			fmt.Errorf("container %s is already dispatched and cannot accept boxes",
				containerAggregate.ID()))
	}

	boxRepo := uow.BoxRepository()
	boxAggregate, err := boxRepo.Get(ctx, cmd.BoxID())
	if err != nil {
		return err
	}

	if err = boxAggregate.AssignToContainer(cmd.ContainerID()); err != nil {
		return err
	}

	if err = boxRepo.Update(ctx, boxAggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
