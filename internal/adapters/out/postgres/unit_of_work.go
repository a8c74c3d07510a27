// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern. The unit of work maintains the list of aggregates touched by
// one business transaction, coordinates writing them out atomically, and
// publishes a change notification for every touched aggregate on commit.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each Create() call yields an isolated instance; concurrent operations must
// not share one. Commit emits a pg_notify on the freight_changes channel per
// tracked aggregate inside the same transaction, so listeners only ever see
// committed versions.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"freight/internal/adapters/out/postgres/boxrepo"
	"freight/internal/adapters/out/postgres/containerrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/core/domain/model/box"
	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// ChangeChannel is the Postgres NOTIFY channel carrying committed aggregate
// changes. The change feed adapter listens on it.
const ChangeChannel = "freight_changes"

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// changePayload is the JSON body of one freight_changes notification.
type changePayload struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Version int64  `json:"version"`
}

// GormUnitOfWorkFactory creates UnitOfWork instances backed by a shared GORM
// connection. Each business operation gets a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the order, box,
// and container repositories. Repositories track every aggregate they write;
// Commit turns the tracked set into freight_changes notifications before the
// transaction closes.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Calling Begin twice on the
// same instance is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit publishes a change notification for every tracked aggregate and
// finalizes the transaction. Notifications ride inside the transaction:
// a rolled-back commit delivers nothing.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.notifyTracked(); err != nil {
		rollbackErr := uow.tx.Rollback().Error
		uow.tx = nil
		if rollbackErr != nil {
			return fmt.Errorf("notify failed: %w (rollback also failed: %w)", err, rollbackErr)
		}
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// Rollback discards all changes made within the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction if one is active, or to the main connection otherwise.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// BoxRepository returns a box repository bound to the current transaction.
func (uow *GormUnitOfWork) BoxRepository() ports.BoxRepository {
	return boxrepo.NewGormBoxRepository(uow.conn(), uow)
}

// ContainerRepository returns a container repository bound to the current
// transaction.
func (uow *GormUnitOfWork) ContainerRepository() ports.ContainerRepository {
	return containerrepo.NewGormContainerRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate as modified within this unit of
// work. Repository implementations call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) notifyTracked() error {
	for _, tracked := range uow.trackedAggregates {
		payload := changePayload{ID: tracked.ID.String()}

		switch aggregate := tracked.Aggregate.(type) {
		case *order.Order:
			payload.Kind = "order"
			payload.Version = aggregate.Version()
		case *box.Box:
			payload.Kind = "box"
			payload.Version = aggregate.Version()
		case *container.Container:
			payload.Kind = "container"
			payload.Version = aggregate.Version()
		default:
			continue
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		if err = uow.tx.Exec(
			"SELECT pg_notify(?, ?)", ChangeChannel, string(body)).Error; err != nil {
			return err
		}
	}

	return nil
}
