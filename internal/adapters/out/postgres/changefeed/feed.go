// Package changefeed implements the change-notification feed over Postgres
// LISTEN/NOTIFY, with a fixed-interval poll fallback for notifications lost
// to reconnects. Both paths funnel through one dedup gate keyed on entity id
// and version, so a subscriber never sees the same change twice and never
// sees versions move backwards.
package changefeed

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"freight/internal/adapters/out/postgres"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const subscriberBuffer = 64

// PostgresChangeFeed listens on the freight_changes channel and fans
// committed aggregate changes out to subscribers.
type PostgresChangeFeed struct {
	listener *pq.Listener
	db       *gorm.DB
	logger   *slog.Logger

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	seen        map[string]int64
}

type subscriber struct {
	predicate ports.ChangePredicate
	ch        chan ports.Change
}

// NewPostgresChangeFeed creates a feed over the given connection string. The
// db handle serves the poll fallback only; pushed notifications arrive on a
// dedicated lib/pq listener connection.
func NewPostgresChangeFeed(dsn string, db *gorm.DB, logger *slog.Logger) (*PostgresChangeFeed, error) {
	feed := &PostgresChangeFeed{
		db:          db,
		logger:      logger.With("component", "change_feed"),
		subscribers: make(map[*subscriber]struct{}),
		seen:        make(map[string]int64),
	}

	feed.listener = pq.NewListener(dsn, 10*time.Second, time.Minute,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				feed.logger.Error("listener event", "event", int(event), "error", err)
			}
		})

	if err := feed.listener.Listen(postgres.ChangeChannel); err != nil {
		_ = feed.listener.Close()
		return nil, err
	}

	return feed, nil
}

// Run consumes pushed notifications until ctx is cancelled. Call it from a
// dedicated goroutine.
func (f *PostgresChangeFeed) Run(ctx context.Context) {
	defer f.close()

	for {
		select {
		case <-ctx.Done():
			return
		case notification := <-f.listener.Notify:
			if notification == nil {
				// Connection loss; the poll fallback covers the gap.
				continue
			}
			f.handlePayload(notification.Extra)
		}
	}
}

// Subscribe registers a predicate-filtered subscriber. The channel closes
// when ctx is cancelled.
func (f *PostgresChangeFeed) Subscribe(
	ctx context.Context,
	predicate ports.ChangePredicate,
) (<-chan ports.Change, error) {
	sub := &subscriber{
		predicate: predicate,
		ch:        make(chan ports.Change, subscriberBuffer),
	}

	f.mu.Lock()
	f.subscribers[sub] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subscribers, sub)
		f.mu.Unlock()
		close(sub.ch)
	}()

	return sub.ch, nil
}

// Poll re-reads the version markers of all three tables and emits anything
// the push channel missed. The cron fallback job calls it on a fixed
// interval.
func (f *PostgresChangeFeed) Poll(ctx context.Context) error {
	tables := []struct {
		kind  string
		table string
	}{
		{"order", "orders"},
		{"box", "boxes"},
		{"container", "containers"},
	}

	for _, t := range tables {
		rows, err := f.db.WithContext(ctx).Raw(
			`SELECT id, version FROM ` + t.table).Rows()
		if err != nil {
			return err
		}

		for rows.Next() {
			var (
				rawID   string
				version int64
			)
			if err = rows.Scan(&rawID, &version); err != nil {
				rows.Close()
				return err
			}

			id, idErr := kernel.UUIDFromString(rawID)
			if idErr != nil {
				rows.Close()
				return idErr
			}

			f.dispatch(ports.Change{EntityKind: t.kind, EntityID: id, Version: version})
		}

		if err = rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}

	return nil
}

func (f *PostgresChangeFeed) handlePayload(payload string) {
	var body struct {
		Kind    string `json:"kind"`
		ID      string `json:"id"`
		Version int64  `json:"version"`
	}

	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		f.logger.Error("malformed change payload", "payload", payload, "error", err)
		return
	}

	id, err := kernel.UUIDFromString(body.ID)
	if err != nil {
		f.logger.Error("malformed change id", "id", body.ID, "error", err)
		return
	}

	f.dispatch(ports.Change{EntityKind: body.Kind, EntityID: id, Version: body.Version})
}

// dispatch passes a change through the dedup gate and fans it out. A change
// whose version does not exceed the last delivered version for its entity is
// dropped: it is either a duplicate (push and poll racing) or stale.
func (f *PostgresChangeFeed) dispatch(change ports.Change) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := change.EntityKind + ":" + change.EntityID.String()
	if change.Version <= f.seen[key] {
		return
	}
	f.seen[key] = change.Version

	for sub := range f.subscribers {
		if !sub.predicate(change) {
			continue
		}
		select {
		case sub.ch <- change:
		default:
			f.logger.Warn("subscriber buffer full, dropping change",
				"entity", change.EntityKind, "entity_id", change.EntityID.String())
		}
	}
}

func (f *PostgresChangeFeed) close() {
	if err := f.listener.Close(); err != nil {
		f.logger.Error("closing listener", "error", err)
	}
}
