// Package mutation implements the optimistic mutation protocol that sits
// between a client session and the backing store. A mutation is applied to
// the session's local copy immediately, dispatched asynchronously, and
// reconciled on the outcome: confirmed in place, or rolled back to the exact
// pre-mutation snapshot. Change notifications arriving mid-flight are
// buffered so a stale value never clobbers an optimistic update.
package mutation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// Status is the lifecycle of one mutation.
type Status int

const (
	// Idle means no mutation is in flight for the entity.
	Idle Status = iota

	// Applying means the local copy carries an optimistic value awaiting the
	// store's verdict.
	Applying

	// Confirmed means the store accepted the mutation.
	Confirmed

	// RolledBack means the store rejected the mutation (or the dispatch
	// timed out) and the local copy was restored from its snapshot.
	RolledBack
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Applying:
		return "applying"
	case Confirmed:
		return "confirmed"
	case RolledBack:
		return "rolled-back"
	default:
		return "unknown"
	}
}

// Cloner deep-copies an entity. Rollback restores exactly what Cloner
// returned before the mutation touched the original.
type Cloner[T any] func(T) T

// Identity extracts the entity's id and version marker.
type Identity[T any] func(T) (kernel.UUID, int64)

// Dispatcher carries an optimistically mutated entity to the backing store.
// Implementations wrap a command handler or a remote call; they must return
// only after the store has accepted or rejected the value.
type Dispatcher[T any] interface {
	Dispatch(ctx context.Context, entity T) error
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc[T any] func(ctx context.Context, entity T) error

// Dispatch calls f.
func (f DispatcherFunc[T]) Dispatch(ctx context.Context, entity T) error {
	return f(ctx, entity)
}

// Mutation tracks one in-flight request through Applying to its resolution.
type Mutation[T any] struct {
	done chan struct{}

	mu     sync.Mutex
	status Status
	err    error
}

// Status returns the mutation's current lifecycle state.
func (m *Mutation[T]) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Err returns the dispatch failure after resolution; nil while applying or
// when confirmed.
func (m *Mutation[T]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Wait blocks until the mutation resolves or ctx is cancelled, returning the
// dispatch error if the mutation rolled back.
func (m *Mutation[T]) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.done:
		return m.Err()
	}
}

func (m *Mutation[T]) resolve(status Status, err error) {
	m.mu.Lock()
	m.status = status
	m.err = err
	m.mu.Unlock()
	close(m.done)
}

// Session coordinates optimistic mutations for one client session. It owns a
// local working copy of every entity the session has loaded; reads are
// served from those copies and writes go through Apply.
//
// Two concurrent mutations on different entities are independent. A second
// mutation on an entity that is still Applying is refused with an
// EntityLocked deny; cross-session conflicts resolve last-write-wins at the
// store and surface here through the normal confirm/rollback path.
type Session[T any] struct {
	clone      Cloner[T]
	identity   Identity[T]
	dispatcher Dispatcher[T]
	timeout    time.Duration
	logger     *slog.Logger

	// observer receives errors the protocol swallows by design, such as
	// stale notifications. Nil is allowed.
	observer func(error)

	mu       sync.Mutex
	entities map[kernel.UUID]T
	inflight map[kernel.UUID]*Mutation[T]
	buffered map[kernel.UUID]T
}

// NewSession creates a mutation session. The timeout bounds each dispatch; a
// dispatch that does not resolve within it is treated as a failure and
// rolled back.
func NewSession[T any](
	clone Cloner[T],
	identity Identity[T],
	dispatcher Dispatcher[T],
	timeout time.Duration,
	logger *slog.Logger,
) *Session[T] {
	return &Session[T]{
		clone:      clone,
		identity:   identity,
		dispatcher: dispatcher,
		timeout:    timeout,
		logger:     logger.With("component", "mutation_session"),
		entities:   make(map[kernel.UUID]T),
		inflight:   make(map[kernel.UUID]*Mutation[T]),
		buffered:   make(map[kernel.UUID]T),
	}
}

// SetObserver installs a hook for errors the protocol handles silently. The
// hook runs with the session lock held and must not call back into the
// session.
func (s *Session[T]) SetObserver(observer func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = observer
}

// Load seeds or replaces the session's local copy of an entity, typically
// from the initial fetch.
func (s *Session[T]) Load(entity T) {
	id, _ := s.identity(entity)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[id] = entity
}

// Get returns the session's current local copy. During an in-flight mutation
// this is the optimistic value.
func (s *Session[T]) Get(id kernel.UUID) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.entities[id]
	return entity, ok
}

// Status returns the mutation state for an entity: Applying while a dispatch
// is in flight, Idle otherwise.
func (s *Session[T]) Status(id kernel.UUID) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inflight[id]; ok {
		return Applying
	}
	return Idle
}

// Apply mutates the local copy immediately and dispatches the new value to
// the store in the background. The returned Mutation resolves to Confirmed
// or RolledBack; reads through Get reflect the optimistic value until then.
//
// Returns *errs.UnauthorizedError with the EntityLocked reason when the
// entity already has a mutation in flight, and *errs.ObjectNotFoundError
// when the entity was never loaded.
func (s *Session[T]) Apply(ctx context.Context, id kernel.UUID, mutate func(T) error) (*Mutation[T], error) {
	s.mu.Lock()

	current, ok := s.entities[id]
	if !ok {
		s.mu.Unlock()
		return nil, errs.NewObjectNotFoundError("entity", id.String())
	}

	if _, busy := s.inflight[id]; busy {
		s.mu.Unlock()
		return nil, errs.NewUnauthorizedError(errs.DenyEntityLocked, id.String())
	}

	snapshot := s.clone(current)

	// A failed mutate may have left a non-atomic closure's changes behind;
	// put the snapshot back so Get never exposes a partial write.
	if err := mutate(current); err != nil {
		s.entities[id] = snapshot
		s.mu.Unlock()
		return nil, err
	}

	m := &Mutation[T]{
		done:   make(chan struct{}),
		status: Applying,
	}
	s.inflight[id] = m
	s.mu.Unlock()

	go s.dispatch(ctx, id, current, snapshot, m)

	return m, nil
}

func (s *Session[T]) dispatch(ctx context.Context, id kernel.UUID, entity T, snapshot T, m *Mutation[T]) {
	dispatchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.dispatcher.Dispatch(dispatchCtx, entity)
	if dispatchCtx.Err() != nil {
		err = errs.NewDispatchFailedErrorWithCause(id.String(), dispatchCtx.Err())
	} else if err != nil {
		err = errs.NewDispatchFailedErrorWithCause(id.String(), err)
	}

	s.mu.Lock()
	delete(s.inflight, id)

	if err != nil {
		s.entities[id] = snapshot
		s.logger.Warn("mutation rolled back",
			"entity_id", id.String(), "error", err)
	}

	s.drainBufferLocked(id)
	s.mu.Unlock()

	if err != nil {
		m.resolve(RolledBack, err)
		return
	}
	m.resolve(Confirmed, nil)
}

// Notify feeds a store-side change into the session: the freshest known
// value of an entity, loaded by the feed consumer. While the entity has a
// mutation in flight the value is buffered and applied only after the
// mutation resolves. A value whose version does not exceed the local one is
// discarded as stale; the observer hook sees the StaleReadError, the caller
// never does.
func (s *Session[T]) Notify(incoming T) {
	id, version := s.identity(incoming)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[id]; busy {
		if buffered, ok := s.buffered[id]; ok {
			if _, bufferedVersion := s.identity(buffered); version <= bufferedVersion {
				return
			}
		}
		s.buffered[id] = incoming
		return
	}

	s.acceptLocked(id, version, incoming)
}

func (s *Session[T]) drainBufferLocked(id kernel.UUID) {
	incoming, ok := s.buffered[id]
	if !ok {
		return
	}
	delete(s.buffered, id)

	_, version := s.identity(incoming)
	s.acceptLocked(id, version, incoming)
}

func (s *Session[T]) acceptLocked(id kernel.UUID, version int64, incoming T) {
	if current, ok := s.entities[id]; ok {
		if _, localVersion := s.identity(current); version <= localVersion {
			s.observe(errs.NewStaleReadError(id.String(), localVersion, version))
			return
		}
	}

	s.entities[id] = incoming
}

func (s *Session[T]) observe(err error) {
	if s.observer == nil {
		return
	}
	s.observer(err)
}
