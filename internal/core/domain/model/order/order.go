package order

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents one imported purchase request. It is the aggregate root
// that carries the order through sourcing, quoting, payment, international
// shipping, customs, and delivery.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and owning client
//   - State is always one value from the defined lifecycle set
//   - A box may only be attached once the state has reached Shipped
//   - State changes go exclusively through validated transitions; the admin
//     override is the single sanctioned bypass
//   - The version marker increases on every successful mutation
//
// Orders referenced by a box are never hard-deleted; the Rejected state is
// the soft replacement for deletion.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// clientID is the owning client's identity
	clientID kernel.UUID

	// sourcingOperatorID is the regional operator responsible for the
	// sourcing side (nil while pending assignment)
	sourcingOperatorID *kernel.UUID

	// logisticsOperatorID is the regional operator responsible for the
	// destination side (nil while pending assignment)
	logisticsOperatorID *kernel.UUID

	// boxID references the consolidating box, set once physically packed
	boxID *kernel.UUID

	// details are the descriptive fields, opaque to the engine
	details Details

	// state is the current position in the lifecycle
	state State

	// version is the last-modified marker used for change-feed dedup and
	// stale-read detection
	version int64

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order owned by clientID in the initial
// AwaitingQuote state with no operators assigned.
//
// Example:
//
//	details, _ := order.NewDetails("espresso machine", "220V, commercial", 2, "", "sea", "warehouse-pickup")
//	o, err := order.NewOrder(kernel.NewUUID(), clientID, details)
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(id kernel.UUID, clientID kernel.UUID, details Details) (*Order, error) {
	o := &Order{
		details:       details,
		state:         AwaitingQuote,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running the
// initial-state rules. It still validates the stored state code, the version
// marker, and the identifiers, so corrupt rows surface as errors instead of
// invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	details Details,
	state State,
	sourcingOperatorID *kernel.UUID,
	logisticsOperatorID *kernel.UUID,
	boxID *kernel.UUID,
	version int64,
) (*Order, error) {
	o := &Order{
		details:             details,
		sourcingOperatorID:  sourcingOperatorID,
		logisticsOperatorID: logisticsOperatorID,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setState(state),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	// The >= Shipped threshold guards attach time only; a boxed order may
	// later be soft-rejected, and that row must still restore.
	if boxID != nil {
		if err := boxID.Validate(); err != nil {
			return nil, err
		}
		o.boxID = boxID
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// constructor. Call it when reconstructing orders from external input.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the owning client's identity.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// SourcingOperator returns the assigned sourcing operator's ID, or nil while
// pending assignment.
func (o *Order) SourcingOperator() *kernel.UUID {
	return o.sourcingOperatorID
}

// LogisticsOperator returns the assigned logistics operator's ID, or nil
// while pending assignment.
func (o *Order) LogisticsOperator() *kernel.UUID {
	return o.logisticsOperatorID
}

// Box returns the consolidating box's ID, or nil while unboxed.
func (o *Order) Box() *kernel.UUID {
	return o.boxID
}

// Details returns the descriptive fields of the order.
func (o *Order) Details() Details {
	return o.details
}

// State returns the current lifecycle state.
func (o *Order) State() State {
	return o.state
}

// Version returns the last-modified marker.
func (o *Order) Version() int64 {
	return o.version
}

// IsActive reports whether the order still counts as active work. Delivered
// is the only state excluded.
func (o *Order) IsActive() bool {
	return o.state != Delivered
}

// PaymentStatus returns the client-facing payment projection of the current
// state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.state.PaymentStatus()
}

// AdvanceTo moves the order to target through the validated state machine.
// Returns *errs.InvalidTransitionError when target is not the defined
// successor of the current state. AdvanceTo performs no authority checks.
func (o *Order) AdvanceTo(target State) error {
	newState, err := o.state.TransitionTo(target)
	if err != nil {
		return err
	}

	o.state = newState
	o.touch()
	return nil
}

// Override forces the order into target regardless of the successor table.
// This is the admin escape hatch; callers must log the override distinctly
// from a normal transition. Target must still be a defined state code.
func (o *Order) Override(target State) error {
	if err := target.Validate(); err != nil {
		return err
	}

	o.state = target
	o.touch()
	return nil
}

// SubmitPayment records the client's payment submission, moving the order
// from AwaitingPayment to PaymentSubmitted.
func (o *Order) SubmitPayment() error {
	return o.AdvanceTo(PaymentSubmitted)
}

// ResubmitPayment retries a declined payment, moving the order from Rejected
// back to AwaitingPayment. This is the only backward-looking transition the
// engine accepts.
func (o *Order) ResubmitPayment() error {
	return o.AdvanceTo(AwaitingPayment)
}

// AssignToBox attaches the order to a consolidation box. The order must have
// reached the in-transit threshold (Shipped or later) before it can be
// physically consolidated.
func (o *Order) AssignToBox(boxID kernel.UUID) error {
	if err := boxID.Validate(); err != nil {
		return err
	}

	if o.state < Shipped {
		return errs.NewValueIsInvalidErrorWithCause("boxId",
			fmt.Errorf("order in state %s has not reached the in-transit threshold", o.state))
	}

	o.boxID = &boxID
	o.touch()
	return nil
}

// AssignSourcingOperator sets the operator responsible for the sourcing side.
func (o *Order) AssignSourcingOperator(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	o.sourcingOperatorID = &operatorID
	o.touch()
	return nil
}

// AssignLogisticsOperator sets the operator responsible for the destination
// side.
func (o *Order) AssignLogisticsOperator(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	o.logisticsOperatorID = &operatorID
	o.touch()
	return nil
}

// touch bumps the last-modified marker after a successful mutation.
func (o *Order) touch() {
	o.version++
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	o.state = state
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("version",
			fmt.Errorf("%d is not a positive version", version))
	}
	o.version = version
	return nil
}
