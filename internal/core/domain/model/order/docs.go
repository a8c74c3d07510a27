// Package order provides domain entities and business logic for the order
// lifecycle in the freight system. It implements the Order aggregate root
// with validated state transitions from sourcing through delivery.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, ownership, and lifecycle
//   - State: A state machine over the canonical integer lifecycle codes
//   - Details: The descriptive fields carried opaquely through the lifecycle
//   - PaymentStatus: The client-facing projection of the payment window states
//
// Key business rules:
//   - States progress monotonically forward through the defined successor table
//   - Rejected -> AwaitingPayment is the single accepted backward transition (payment retry)
//   - A box may only be attached once the order has reached Shipped
//   - Delivered is terminal; rejected orders are retained, never deleted
//   - The state machine performs no authority checks (see the services package)
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
