// Package boxrepo provides data transfer objects and mapping functions for
// box persistence.
package boxrepo

import (
	"freight/internal/core/domain/model/box"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BoxDTO represents the database structure for persisting box aggregates.
// Indexed on the container column so receipt cascades can load a manifest in
// one query.
type BoxDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ContainerID *uuid.UUID `gorm:"type:uuid;index"`
	State       int
	Version     int64
}

// TableName specifies the database table name for box entities.
func (BoxDTO) TableName() string {
	return "boxes"
}

// fromDomain converts a box aggregate to its database representation.
func fromDomain(aggregate *box.Box) BoxDTO {
	var containerID *uuid.UUID
	if id := aggregate.Container(); id != nil {
		raw := id.Bytes()
		containerID = &raw
	}

	return BoxDTO{
		ID:          aggregate.ID().Bytes(),
		ContainerID: containerID,
		State:       int(aggregate.State()),
		Version:     aggregate.Version(),
	}
}

// toDomain converts a database DTO back into a box aggregate.
func toDomain(dto BoxDTO) (*box.Box, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var containerID *kernel.UUID
	if dto.ContainerID != nil {
		cID, containerErr := kernel.UUIDFromBytes((*dto.ContainerID)[:])
		if containerErr != nil {
			return nil, containerErr
		}

		containerID = &cID
	}

	return box.RestoreBox(id, box.State(dto.State), containerID, dto.Version)
}
