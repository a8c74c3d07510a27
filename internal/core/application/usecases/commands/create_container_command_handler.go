package commands

import (
	"context"

	"freight/internal/core/domain/model/container"
)

// CreateContainerCommandHandler opens a new shipping container for the
// logistics side.
type CreateContainerCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCreateContainerCommandHandler creates a handler for container creation.
func NewCreateContainerCommandHandler(uowFactory ShipmentUoWFactory) CreateContainerCommandHandler {
	return CreateContainerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the container creation command.
func (h *CreateContainerCommandHandler) Handle(ctx context.Context, cmd CreateContainerCommand) error {
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

	aggregate, err := container.NewContainer(cmd.ContainerID())
	if err != nil {
		return err
	}

	if err = uow.ContainerRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
