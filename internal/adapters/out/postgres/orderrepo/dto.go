// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Indexed on the assignment columns because the active-work
// counts and the operator listings filter on them.
type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID            uuid.UUID  `gorm:"type:uuid;index"`
	SourcingOperatorID  *uuid.UUID `gorm:"type:uuid;index"`
	LogisticsOperatorID *uuid.UUID `gorm:"type:uuid;index"`
	BoxID               *uuid.UUID `gorm:"type:uuid;index"`
	State               int        `gorm:"index"`
	ProductName         string
	Description         string
	Quantity            int
	Specifications      string
	DeliveryMode        string
	DestinationHandling string
	Version             int64
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		ClientID:            aggregate.ClientID().Bytes(),
		SourcingOperatorID:  optionalToRaw(aggregate.SourcingOperator()),
		LogisticsOperatorID: optionalToRaw(aggregate.LogisticsOperator()),
		BoxID:               optionalToRaw(aggregate.Box()),
		State:               int(aggregate.State()),
		ProductName:         aggregate.Details().ProductName(),
		Description:         aggregate.Details().Description(),
		Quantity:            aggregate.Details().Quantity(),
		Specifications:      aggregate.Details().Specifications(),
		DeliveryMode:        aggregate.Details().DeliveryMode(),
		DestinationHandling: aggregate.Details().DestinationHandling(),
		Version:             aggregate.Version(),
	}
}

// toDomain converts a database DTO back into an order aggregate using
// RestoreOrder, so stored rows re-enter the engine fully validated.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	sourcingOperatorID, err := optionalFromRaw(dto.SourcingOperatorID)
	if err != nil {
		return nil, err
	}

	logisticsOperatorID, err := optionalFromRaw(dto.LogisticsOperatorID)
	if err != nil {
		return nil, err
	}

	boxID, err := optionalFromRaw(dto.BoxID)
	if err != nil {
		return nil, err
	}

	details, err := order.NewDetails(
		dto.ProductName,
		dto.Description,
		dto.Quantity,
		dto.Specifications,
		dto.DeliveryMode,
		dto.DestinationHandling,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		clientID,
		details,
		order.State(dto.State),
		sourcingOperatorID,
		logisticsOperatorID,
		boxID,
		dto.Version,
	)
}

func optionalToRaw(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}

	raw := id.Bytes()
	return &raw
}

func optionalFromRaw(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
