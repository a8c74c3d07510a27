package queries

import (
	"context"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"

	"gorm.io/gorm"
)

// ActiveWorkCountQueryHandler counts an operator's active orders with raw
// SQL.
type ActiveWorkCountQueryHandler struct {
	db *gorm.DB
}

// NewActiveWorkCountQueryHandler creates a handler for work-count queries.
func NewActiveWorkCountQueryHandler(db *gorm.DB) ActiveWorkCountQueryHandler {
	return ActiveWorkCountQueryHandler{db: db}
}

// Handle executes the count.
func (h ActiveWorkCountQueryHandler) Handle(
	ctx context.Context,
	query ActiveWorkCountQuery,
) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	column := "logistics_operator_id"
	if query.Role() == services.RoleSourcingOperator {
		column = "sourcing_operator_id"
	}

	var count int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE `+column+` = ?
		AND state <> ?
	`, query.OperatorID().String(), order.Delivered).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
