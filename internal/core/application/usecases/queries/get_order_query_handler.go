package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order snapshot with raw SQL.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns *errs.ObjectNotFoundError when no order
// has the requested id.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_id,
			sourcing_operator_id,
			logistics_operator_id,
			box_id,
			state,
			product_name,
			description,
			quantity,
			specifications,
			delivery_mode,
			destination_handling,
			version
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var (
		id                  uuid.UUID
		clientID            uuid.UUID
		sourcingOperatorID  uuid.NullUUID
		logisticsOperatorID uuid.NullUUID
		boxID               uuid.NullUUID
		state               int
		resp                GetOrderQueryResponse
	)

	err := row.Scan(
		&id,
		&clientID,
		&sourcingOperatorID,
		&logisticsOperatorID,
		&boxID,
		&state,
		&resp.ProductName,
		&resp.Description,
		&resp.Quantity,
		&resp.Specifications,
		&resp.DeliveryMode,
		&resp.DestinationHandling,
		&resp.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.SourcingOperatorID, err = optionalUUID(sourcingOperatorID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.LogisticsOperatorID, err = optionalUUID(logisticsOperatorID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.BoxID, err = optionalUUID(boxID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.State = order.State(state)
	resp.PaymentStatus = resp.State.PaymentStatus()

	return resp, nil
}

func optionalUUID(value uuid.NullUUID) (*kernel.UUID, error) {
	if !value.Valid {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes(value.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
