package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/box"
	"freight/internal/pkg/errs"
)

// AttachOrderToBoxCommandHandler records which box carries an order's goods.
// Spans the order and box aggregates: the order must be on the shipment leg
// and the box must still be open.
type AttachOrderToBoxCommandHandler struct {
	uowFactory UoWFactory
}

// NewAttachOrderToBoxCommandHandler creates a handler for order attachment.
func NewAttachOrderToBoxCommandHandler(uowFactory UoWFactory) AttachOrderToBoxCommandHandler {
	return AttachOrderToBoxCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the attachment command.
func (h *AttachOrderToBoxCommandHandler) Handle(ctx context.Context, cmd AttachOrderToBoxCommand) error {
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

	boxAggregate, err := uow.BoxRepository().Get(ctx, cmd.BoxID())
	if err != nil {
		return err
	}

	if boxAggregate.State() != box.New {
		return errs.NewValueIsInvalidErrorWithCause("boxId",
			fmt.Errorf("box %s is already packed and cannot accept orders", boxAggregate.ID()))
	}

	orderRepo := uow.OrderRepository()
	orderAggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = orderAggregate.AssignToBox(cmd.BoxID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
