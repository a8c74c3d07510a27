// Package containerrepo provides data transfer objects and mapping functions
// for container persistence.
package containerrepo

import (
	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ContainerDTO represents the database structure for persisting container
// aggregates.
type ContainerDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	State   int
	Version int64
}

// TableName specifies the database table name for container entities.
func (ContainerDTO) TableName() string {
	return "containers"
}

// fromDomain converts a container aggregate to its database representation.
func fromDomain(aggregate *container.Container) ContainerDTO {
	return ContainerDTO{
		ID:      aggregate.ID().Bytes(),
		State:   int(aggregate.State()),
		Version: aggregate.Version(),
	}
}

// toDomain converts a database DTO back into a container aggregate.
func toDomain(dto ContainerDTO) (*container.Container, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return container.RestoreContainer(id, container.State(dto.State), dto.Version)
}
