package ports

import (
	"context"

	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"
)

// ContainerRepository defines the persistence contract for container
// aggregates.
type ContainerRepository interface {
	// Add persists a new container aggregate to storage.
	Add(ctx context.Context, aggregate *container.Container) error

	// Update persists changes to an existing container aggregate.
	Update(ctx context.Context, aggregate *container.Container) error

	// Get retrieves a container aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*container.Container, error)
}
