package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// StateBucket groups lifecycle states into the coarse filters the dashboard
// offers. Individual state codes stay an engine concern; screens filter by
// phase.
type StateBucket string

const (
	// BucketAll applies no state filter.
	BucketAll StateBucket = "all"

	// BucketQuoting covers sourcing and quote review.
	BucketQuoting StateBucket = "quoting"

	// BucketPayment covers the payment window, including rejection.
	BucketPayment StateBucket = "payment"

	// BucketPreparing covers the pre-shipment processing states.
	BucketPreparing StateBucket = "preparing"

	// BucketShipping covers the international leg through local delivery
	// readiness.
	BucketShipping StateBucket = "shipping"

	// BucketDelivered covers completed orders only.
	BucketDelivered StateBucket = "delivered"
)

func bucketStates() map[StateBucket][]order.State {
	return map[StateBucket][]order.State{
		BucketQuoting: {order.AwaitingQuote, order.QuoteReview},
		BucketPayment: {
			order.Rejected, order.AwaitingPayment,
			order.PaymentSubmitted, order.Paid,
		},
		BucketPreparing: {order.Preparing, order.ReadyToShip},
		BucketShipping: {
			order.Shipped, order.ArrivedAtPort, order.InCustoms,
			order.AtLocalWarehouse, order.ReadyForDelivery,
		},
		BucketDelivered: {order.Delivered},
	}
}

// Validate checks the bucket is one of the defined filters.
func (b StateBucket) Validate() error {
	if b == BucketAll {
		return nil
	}
	if _, ok := bucketStates()[b]; !ok {
		return errs.NewValueIsInvalidError("stateBucket")
	}
	return nil
}

// States returns the state codes the bucket covers; nil for BucketAll.
func (b StateBucket) States() []order.State {
	return bucketStates()[b]
}

// ListOrdersQuery retrieves the order listing for the dashboard tables.
// Free text matches the order id, the owning client id, and the product name
// case-insensitively; the bucket narrows by lifecycle phase.
type ListOrdersQuery struct {
	freeText string
	bucket   StateBucket

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query. An empty free text matches
// everything.
func NewListOrdersQuery(freeText string, bucket StateBucket) (ListOrdersQuery, error) {
	if err := bucket.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		freeText: freeText,
		bucket:   bucket,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// FreeText returns the search text.
func (q ListOrdersQuery) FreeText() string {
	return q.freeText
}

// Bucket returns the lifecycle phase filter.
func (q ListOrdersQuery) Bucket() StateBucket {
	return q.bucket
}

// ListOrdersQueryResponse is one row of the order listing.
type ListOrdersQueryResponse struct {
	ID                  kernel.UUID
	ClientID            kernel.UUID
	SourcingOperatorID  *kernel.UUID
	LogisticsOperatorID *kernel.UUID
	State               order.State
	PaymentStatus       order.PaymentStatus
	ProductName         string
}
