package commands

import (
	"context"

	"freight/internal/core/domain/model/box"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
)

// CreateBoxCommandHandler opens a new consolidation box. Boxes are warehouse
// equipment, so only logistics operators and admins create them.
type CreateBoxCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCreateBoxCommandHandler creates a handler for box creation.
func NewCreateBoxCommandHandler(uowFactory ShipmentUoWFactory) CreateBoxCommandHandler {
	return CreateBoxCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the box creation command.
func (h *CreateBoxCommandHandler) Handle(ctx context.Context, cmd CreateBoxCommand) error {
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

	aggregate, err := box.NewBox(cmd.BoxID())
	if err != nil {
		return err
	}

	if err = uow.BoxRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// requireLogisticsSide gates the consolidation write commands that operate
// on equipment rather than on a specific aggregate's transition.
func requireLogisticsSide(actor services.Actor) error {
	if actor.Role == services.RoleLogisticsOperator || actor.Role == services.RoleAdmin {
		return nil
	}

	return errs.NewUnauthorizedError(errs.DenyWrongRole, string(actor.Role))
}
