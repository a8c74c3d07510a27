package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// Change is one entity-changed notification from the backing store. The
// version marker is the entity's last-modified value; subscribers use
// (EntityKind, EntityID, Version) to deduplicate the push channel against the
// poll fallback and to discard stale reads.
type Change struct {
	EntityKind string
	EntityID   kernel.UUID
	Version    int64
}

// ChangePredicate filters the feed to the rows a subscriber cares about,
// e.g. "orders assigned to operator X". The same predicate must be
// applicable to both the push channel and the poll fallback.
type ChangePredicate func(Change) bool

// ChangeFeed is the asynchronous change-notification contract of the backing
// store: a push channel with a fixed-interval poll fallback behind it, both
// deduplicated before delivery.
type ChangeFeed interface {
	// Subscribe delivers deduplicated changes matching predicate until ctx
	// is cancelled. The returned channel is closed on cancellation.
	Subscribe(ctx context.Context, predicate ChangePredicate) (<-chan Change, error)
}
