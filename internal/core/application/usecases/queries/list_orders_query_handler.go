package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads the order listing with raw SQL. Orders still
// waiting for an operator assignment sort first so they surface at the top
// of the work queue; within each group the order id keeps the sort stable.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			client_id,
			sourcing_operator_id,
			logistics_operator_id,
			state,
			product_name
		FROM orders
		WHERE (id::text ILIKE ? OR client_id::text ILIKE ? OR product_name ILIKE ?)
	`
	pattern := "%" + query.FreeText() + "%"
	args := []any{pattern, pattern, pattern}

	if states := query.Bucket().States(); states != nil {
		sqlQuery += ` AND state IN ?`
		args = append(args, states)
	}

	sqlQuery += `
		ORDER BY (sourcing_operator_id IS NULL OR logistics_operator_id IS NULL) DESC, id
	`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)

	for rows.Next() {
		var (
			id                  uuid.UUID
			clientID            uuid.UUID
			sourcingOperatorID  uuid.NullUUID
			logisticsOperatorID uuid.NullUUID
			state               int
			resp                ListOrdersQueryResponse
		)

		err = rows.Scan(
			&id,
			&clientID,
			&sourcingOperatorID,
			&logisticsOperatorID,
			&state,
			&resp.ProductName,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
			return nil, err
		}
		if resp.SourcingOperatorID, err = optionalUUID(sourcingOperatorID); err != nil {
			return nil, err
		}
		if resp.LogisticsOperatorID, err = optionalUUID(logisticsOperatorID); err != nil {
			return nil, err
		}

		resp.State = order.State(state)
		resp.PaymentStatus = resp.State.PaymentStatus()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
