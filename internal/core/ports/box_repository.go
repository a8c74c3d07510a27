package ports

import (
	"context"

	"freight/internal/core/domain/model/box"
	"freight/internal/core/domain/model/kernel"
)

// BoxRepository defines the persistence contract for box aggregates.
type BoxRepository interface {
	// Add persists a new box aggregate to storage.
	Add(ctx context.Context, aggregate *box.Box) error

	// Update persists changes to an existing box aggregate.
	Update(ctx context.Context, aggregate *box.Box) error

	// Get retrieves a box aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*box.Box, error)

	// GetAllByContainer retrieves every box assigned to the given container.
	// Used to verify and cascade container receipt.
	GetAllByContainer(ctx context.Context, containerID kernel.UUID) ([]*box.Box, error)
}
