package order

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// State represents the lifecycle state of an order. It implements a state
// machine with monotonic forward progression; the single defined exception is
// the Rejected -> AwaitingPayment retry after a declined payment.
//
// State transitions:
//
//	Rejected ──> AwaitingPayment (payment retry, the only backward edge)
//
//	AwaitingQuote ──> QuoteReview ──> AwaitingPayment ──> PaymentSubmitted ──> Paid
//	   ──> Preparing ──> ReadyToShip ──> Shipped ──> ArrivedAtPort ──> InCustoms
//	   ──> AtLocalWarehouse ──> ReadyForDelivery ──> Delivered
//
// The integer codes are the canonical single source of truth for the whole
// system; persistence and transport carry them verbatim. Preparing and
// ReadyToShip form an undifferentiated pre-shipment bucket pending product
// clarification.
//
// State performs no authority checks; who may request a transition is the
// authority resolver's concern, keeping this machine pure and independently
// testable.
type State int

const (
	// Rejected marks a declined payment. The client may resubmit payment,
	// returning the order to AwaitingPayment.
	Rejected State = -1

	// Unknown represents an invalid or undefined state. This value (0) helps
	// catch uninitialized State values; no lifecycle code uses it.
	Unknown State = 0

	// AwaitingQuote is the initial state: the order waits for a sourcing
	// quotation.
	AwaitingQuote State = 1

	// QuoteReview means the quotation is under logistics review.
	QuoteReview State = 2

	// AwaitingPayment means the order is quoted and waits for client payment.
	AwaitingPayment State = 3

	// PaymentSubmitted means payment was submitted and awaits validation.
	PaymentSubmitted State = 4

	// Paid means payment has been validated.
	Paid State = 5

	// Preparing is the first half of the generic pre-shipment bucket.
	Preparing State = 6

	// ReadyToShip is the second half of the generic pre-shipment bucket.
	ReadyToShip State = 7

	// Shipped means the order is in transit to the destination country.
	Shipped State = 8

	// ArrivedAtPort means the order reached the destination port or warehouse.
	ArrivedAtPort State = 9

	// InCustoms means the order is in customs clearance.
	InCustoms State = 10

	// AtLocalWarehouse means the order was received at the local warehouse.
	AtLocalWarehouse State = 11

	// ReadyForDelivery means the order is ready for final delivery.
	ReadyForDelivery State = 12

	// Delivered is the terminal state of the lifecycle.
	Delivered State = 13
)

// entityKind identifies the order machine in transition errors.
const entityKind = "order"

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:          "Unknown",
		Rejected:         "Rejected",
		AwaitingQuote:    "AwaitingQuote",
		QuoteReview:      "QuoteReview",
		AwaitingPayment:  "AwaitingPayment",
		PaymentSubmitted: "PaymentSubmitted",
		Paid:             "Paid",
		Preparing:        "Preparing",
		ReadyToShip:      "ReadyToShip",
		Shipped:          "Shipped",
		ArrivedAtPort:    "ArrivedAtPort",
		InCustoms:        "InCustoms",
		AtLocalWarehouse: "AtLocalWarehouse",
		ReadyForDelivery: "ReadyForDelivery",
		Delivered:        "Delivered",
	}
}

// getSuccessors returns the defined successor set per state. Every state has
// at most one successor; Rejected's successor is the payment retry edge.
func getSuccessors() map[State][]State {
	return map[State][]State{
		Rejected:         {AwaitingPayment},
		AwaitingQuote:    {QuoteReview},
		QuoteReview:      {AwaitingPayment},
		AwaitingPayment:  {PaymentSubmitted},
		PaymentSubmitted: {Paid},
		Paid:             {Preparing},
		Preparing:        {ReadyToShip},
		ReadyToShip:      {Shipped},
		Shipped:          {ArrivedAtPort},
		ArrivedAtPort:    {InCustoms},
		InCustoms:        {AtLocalWarehouse},
		AtLocalWarehouse: {ReadyForDelivery},
		ReadyForDelivery: {Delivered},
		Delivered:        {},
	}
}

// Validate checks that the state is one of the defined lifecycle codes.
// Unknown (0) and anything outside the table are invalid.
func (s State) Validate() error {
	if _, ok := getSuccessors()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("%d is not a valid order state", s))
	}
	return nil
}

// String returns the human-readable name of the state, or "Unknown" for any
// value outside the defined set.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are defined from s.
// Delivered is the only terminal order state.
func (s State) IsTerminal() bool {
	return s == Delivered
}

// Successors returns the defined successor states of s. The result is empty
// for terminal or invalid states.
func (s State) Successors() []State {
	return getSuccessors()[s]
}

// CanTransitionTo reports whether target is a defined successor of s.
func (s State) CanTransitionTo(target State) bool {
	for _, next := range getSuccessors()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and applies a transition to target.
//
// Returns:
//   - (target, nil) when target is the defined successor of s
//   - (0, *errs.InvalidTransitionError) for any other request
//
// The Rejected -> AwaitingPayment retry is the only accepted transition whose
// target code is lower than the source code.
func (s State) TransitionTo(target State) (State, error) {
	if err := s.Validate(); err != nil {
		return 0, errs.NewInvalidTransitionErrorWithCause(entityKind, s.String(), target.String(), err)
	}
	if !s.CanTransitionTo(target) {
		return 0, errs.NewInvalidTransitionError(entityKind, s.String(), target.String())
	}
	return target, nil
}
