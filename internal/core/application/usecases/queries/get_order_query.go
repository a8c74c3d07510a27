package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order snapshot for detail screens. The
// response carries the derived payment status so the client never computes
// it from the raw state code.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full order snapshot.
type GetOrderQueryResponse struct {
	ID                  kernel.UUID
	ClientID            kernel.UUID
	SourcingOperatorID  *kernel.UUID
	LogisticsOperatorID *kernel.UUID
	BoxID               *kernel.UUID
	State               order.State
	PaymentStatus       order.PaymentStatus
	ProductName         string
	Description         string
	Quantity            int
	Specifications      string
	DeliveryMode        string
	DestinationHandling string
	Version             int64
}
