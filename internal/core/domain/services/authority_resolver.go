package services

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/model/box"
	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
)

// Role identifies the acting party requesting a transition.
type Role string

const (
	// RoleClient is the owning client of an order.
	RoleClient Role = "client"

	// RoleSourcingOperator is the regional role responsible for quoting and
	// sourcing.
	RoleSourcingOperator Role = "sourcing-operator"

	// RoleLogisticsOperator is the regional role responsible for shipment,
	// customs, and delivery, and for all box/container handling.
	RoleLogisticsOperator Role = "logistics-operator"

	// RoleAdmin may force any transition; such overrides are logged
	// distinctly from normal transitions.
	RoleAdmin Role = "admin"
)

// Path distinguishes how a transition request reached the resolver. The
// client's payment transitions are only reachable through the dedicated
// payment commands, never as direct state writes.
type Path int

const (
	// PathDirect is a plain state-write request.
	PathDirect Path = iota

	// PathPayment is a request made through the payment submission or
	// resubmission commands.
	PathPayment
)

// Actor is the identity and role requesting a transition.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// Decision is the resolver's verdict on a transition request.
type Decision struct {
	// Permitted reports whether the transition may proceed.
	Permitted bool

	// Override is set when the permission stems from the admin force path;
	// callers apply the transition outside the successor table and log it.
	Override bool

	// Reason carries the deny reason code when Permitted is false.
	Reason errs.DenyReason
}

func permit() Decision {
	return Decision{Permitted: true}
}

func permitOverride() Decision {
	return Decision{Permitted: true, Override: true}
}

func deny(reason errs.DenyReason) Decision {
	return Decision{Reason: reason}
}

// Err converts a denial into an *errs.UnauthorizedError for the given actor.
// Returns nil for a permitted decision.
func (d Decision) Err(actor Actor) error {
	if d.Permitted {
		return nil
	}
	return errs.NewUnauthorizedError(d.Reason, string(actor.Role))
}

// sourcingOwnedStates are the order states a sourcing operator may advance.
var sourcingOwnedStates = map[order.State]bool{
	order.AwaitingQuote: true,
}

// logisticsOwnedStates are the order states a logistics operator may advance.
var logisticsOwnedStates = map[order.State]bool{
	order.QuoteReview:      true,
	order.AwaitingPayment:  true,
	order.PaymentSubmitted: true,
	order.Shipped:          true,
	order.ArrivedAtPort:    true,
	order.InCustoms:        true,
	order.AtLocalWarehouse: true,
	order.ReadyForDelivery: true,
}

// AuthorityResolver decides whether an acting role may advance an entity's
// state. It is a pure domain service: it inspects the entity and the actor
// and returns a Decision without touching storage, which keeps the
// role-authority rules testable without rendering or persistence.
//
// The resolver never validates the transition itself; the state machines do
// that independently. A permitted Decision can still fail as an
// InvalidTransition.
type AuthorityResolver struct {
	logger *slog.Logger
}

// NewAuthorityResolver creates an AuthorityResolver. The logger records
// admin overrides distinctly from normal transitions.
func NewAuthorityResolver(logger *slog.Logger) AuthorityResolver {
	return AuthorityResolver{
		logger: logger.With("component", "authority_resolver"),
	}
}

// ResolveOrderTransition decides whether actor may move the order to target.
//
// Rules:
//   - admin: always permitted, as a logged override
//   - client: only the payment path on their own order, and only the
//     Rejected -> AwaitingPayment retry or AwaitingPayment -> PaymentSubmitted
//     submission
//   - sourcing-operator: only while the order is awaiting quotation, and only
//     when unassigned or assigned to this operator
//   - logistics-operator: the review/payment window and the shipment leg
//     (states 2-4 and 8-12), same assignment rule
func (r AuthorityResolver) ResolveOrderTransition(
	ctx context.Context,
	actor Actor,
	o *order.Order,
	target order.State,
	path Path,
) Decision {
	if err := o.Validate(); err != nil {
		return deny(errs.DenyWrongRole)
	}

	switch actor.Role {
	case RoleAdmin:
		r.logOverride(ctx, actor, "order", o.ID(), int(o.State()), int(target))
		return permitOverride()

	case RoleClient:
		if !o.ClientID().IsEqual(actor.ID) {
			return deny(errs.DenyNotOwner)
		}
		if path != PathPayment {
			return deny(errs.DenyWrongRole)
		}
		retry := o.State() == order.Rejected && target == order.AwaitingPayment
		submit := o.State() == order.AwaitingPayment && target == order.PaymentSubmitted
		if retry || submit {
			return permit()
		}
		return deny(errs.DenyWrongRole)

	case RoleSourcingOperator:
		if !sourcingOwnedStates[o.State()] {
			return deny(errs.DenyWrongRole)
		}
		if assigned := o.SourcingOperator(); assigned != nil && !assigned.IsEqual(actor.ID) {
			return deny(errs.DenyNotOwner)
		}
		return permit()

	case RoleLogisticsOperator:
		if !logisticsOwnedStates[o.State()] {
			return deny(errs.DenyWrongRole)
		}
		if assigned := o.LogisticsOperator(); assigned != nil && !assigned.IsEqual(actor.ID) {
			return deny(errs.DenyNotOwner)
		}
		return permit()

	default:
		return deny(errs.DenyWrongRole)
	}
}

// ResolveBoxTransition decides whether actor may move the box to target.
// Boxes belong to the logistics side; only logistics operators and admins
// touch them.
func (r AuthorityResolver) ResolveBoxTransition(
	ctx context.Context,
	actor Actor,
	b *box.Box,
	target box.State,
) Decision {
	if err := b.Validate(); err != nil {
		return deny(errs.DenyWrongRole)
	}

	switch actor.Role {
	case RoleAdmin:
		r.logOverride(ctx, actor, "box", b.ID(), int(b.State()), int(target))
		return permitOverride()
	case RoleLogisticsOperator:
		return permit()
	default:
		return deny(errs.DenyWrongRole)
	}
}

// ResolveContainerTransition decides whether actor may move the container to
// target. Same ownership as boxes: logistics operators and admins only.
func (r AuthorityResolver) ResolveContainerTransition(
	ctx context.Context,
	actor Actor,
	c *container.Container,
	target container.State,
) Decision {
	if err := c.Validate(); err != nil {
		return deny(errs.DenyWrongRole)
	}

	switch actor.Role {
	case RoleAdmin:
		r.logOverride(ctx, actor, "container", c.ID(), int(c.State()), int(target))
		return permitOverride()
	case RoleLogisticsOperator:
		return permit()
	default:
		return deny(errs.DenyWrongRole)
	}
}

func (r AuthorityResolver) logOverride(
	ctx context.Context,
	actor Actor,
	entityKind string,
	entityID kernel.UUID,
	from, to int,
) {
	r.logger.WarnContext(ctx, "authority override",
		"actor", actor.ID.String(),
		"role", string(actor.Role),
		"entity", entityKind,
		"entity_id", entityID.String(),
		"from", from,
		"to", to,
	)
}
