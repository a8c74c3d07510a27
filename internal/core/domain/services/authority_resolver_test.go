package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"freight/internal/core/domain/model/box"
	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver() services.AuthorityResolver {
	return services.NewAuthorityResolver(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testDetails(t *testing.T) order.Details {
	t.Helper()
	d, err := order.NewDetails("widget", "a widget", 1, "", "sea", "pickup")
	require.NoError(t, err)
	return d
}

func orderInState(t *testing.T, clientID kernel.UUID, target order.State) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), clientID, testDetails(t))
	require.NoError(t, err)
	for o.State() != target {
		successors := o.State().Successors()
		require.NotEmpty(t, successors)
		require.NoError(t, o.AdvanceTo(successors[0]))
	}
	return o
}

func TestResolveOrderTransition_Client(t *testing.T) {
	resolver := newResolver()
	ctx := context.Background()
	clientID := kernel.NewUUID()
	client := services.Actor{ID: clientID, Role: services.RoleClient}

	t.Run("may submit payment on own order via payment path", func(t *testing.T) {
		o := orderInState(t, clientID, order.AwaitingPayment)

		decision := resolver.ResolveOrderTransition(
			ctx, client, o, order.PaymentSubmitted, services.PathPayment)

		assert.True(t, decision.Permitted)
		assert.False(t, decision.Override)
	})

	t.Run("may retry a rejected payment via payment path", func(t *testing.T) {
		o := orderInState(t, clientID, order.PaymentSubmitted)
		require.NoError(t, o.Override(order.Rejected))

		decision := resolver.ResolveOrderTransition(
			ctx, client, o, order.AwaitingPayment, services.PathPayment)

		assert.True(t, decision.Permitted)
	})

	t.Run("denied on a direct state write", func(t *testing.T) {
		o := orderInState(t, clientID, order.AwaitingPayment)

		decision := resolver.ResolveOrderTransition(
			ctx, client, o, order.PaymentSubmitted, services.PathDirect)

		assert.False(t, decision.Permitted)
		assert.Equal(t, errs.DenyWrongRole, decision.Reason)
	})

	t.Run("denied on another client's order", func(t *testing.T) {
		o := orderInState(t, kernel.NewUUID(), order.AwaitingPayment)

		decision := resolver.ResolveOrderTransition(
			ctx, client, o, order.PaymentSubmitted, services.PathPayment)

		assert.False(t, decision.Permitted)
		assert.Equal(t, errs.DenyNotOwner, decision.Reason)

		err := decision.Err(client)
		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("denied outside the payment window", func(t *testing.T) {
		o := orderInState(t, clientID, order.Shipped)

		decision := resolver.ResolveOrderTransition(
			ctx, client, o, order.ArrivedAtPort, services.PathPayment)

		assert.False(t, decision.Permitted)
		assert.Equal(t, errs.DenyWrongRole, decision.Reason)
	})
}

func TestResolveOrderTransition_Operators(t *testing.T) {
	resolver := newResolver()
	ctx := context.Background()
	operatorID := kernel.NewUUID()

	t.Run("sourcing operator owns only the quotation state", func(t *testing.T) {
		sourcing := services.Actor{ID: operatorID, Role: services.RoleSourcingOperator}

		o := orderInState(t, kernel.NewUUID(), order.AwaitingQuote)
		decision := resolver.ResolveOrderTransition(ctx, sourcing, o, order.QuoteReview, services.PathDirect)
		assert.True(t, decision.Permitted)

		o = orderInState(t, kernel.NewUUID(), order.QuoteReview)
		decision = resolver.ResolveOrderTransition(ctx, sourcing, o, order.AwaitingPayment, services.PathDirect)
		assert.False(t, decision.Permitted)
		assert.Equal(t, errs.DenyWrongRole, decision.Reason)
	})

	t.Run("sourcing operator denied on an order assigned to someone else", func(t *testing.T) {
		sourcing := services.Actor{ID: operatorID, Role: services.RoleSourcingOperator}
		o := orderInState(t, kernel.NewUUID(), order.AwaitingQuote)
		require.NoError(t, o.AssignSourcingOperator(kernel.NewUUID()))

		decision := resolver.ResolveOrderTransition(ctx, sourcing, o, order.QuoteReview, services.PathDirect)

		assert.False(t, decision.Permitted)
		assert.Equal(t, errs.DenyNotOwner, decision.Reason)
	})

	t.Run("logistics operator owns review, payment, and the shipment leg", func(t *testing.T) {
		logistics := services.Actor{ID: operatorID, Role: services.RoleLogisticsOperator}

		ownedStates := map[order.State]order.State{
			order.QuoteReview:      order.AwaitingPayment,
			order.AwaitingPayment:  order.PaymentSubmitted,
			order.PaymentSubmitted: order.Paid,
			order.Shipped:          order.ArrivedAtPort,
			order.ArrivedAtPort:    order.InCustoms,
			order.InCustoms:        order.AtLocalWarehouse,
			order.AtLocalWarehouse: order.ReadyForDelivery,
			order.ReadyForDelivery: order.Delivered,
		}
		for from, to := range ownedStates {
			o := orderInState(t, kernel.NewUUID(), from)
			decision := resolver.ResolveOrderTransition(ctx, logistics, o, to, services.PathDirect)
			assert.True(t, decision.Permitted, "logistics should own %s", from)
		}

		// not owned: initial quotation and the pre-shipment bucket
		for _, from := range []order.State{order.AwaitingQuote, order.Paid, order.Preparing, order.ReadyToShip} {
			o := orderInState(t, kernel.NewUUID(), from)
			decision := resolver.ResolveOrderTransition(ctx, logistics, o, o.State().Successors()[0], services.PathDirect)
			assert.False(t, decision.Permitted, "logistics should not own %s", from)
		}
	})
}

func TestResolveOrderTransition_Admin(t *testing.T) {
	resolver := newResolver()
	admin := services.Actor{ID: kernel.NewUUID(), Role: services.RoleAdmin}

	t.Run("admin may force anything, flagged as override", func(t *testing.T) {
		o := orderInState(t, kernel.NewUUID(), order.AwaitingQuote)

		decision := resolver.ResolveOrderTransition(
			context.Background(), admin, o, order.Delivered, services.PathDirect)

		assert.True(t, decision.Permitted)
		assert.True(t, decision.Override)
		require.NoError(t, decision.Err(admin))
	})
}

func TestResolveBoxAndContainerTransitions(t *testing.T) {
	resolver := newResolver()
	ctx := context.Background()
	logistics := services.Actor{ID: kernel.NewUUID(), Role: services.RoleLogisticsOperator}
	admin := services.Actor{ID: kernel.NewUUID(), Role: services.RoleAdmin}

	b, err := box.NewBox(kernel.NewUUID())
	require.NoError(t, err)
	c, err := container.NewContainer(kernel.NewUUID())
	require.NoError(t, err)

	t.Run("logistics operator owns boxes and containers", func(t *testing.T) {
		assert.True(t, resolver.ResolveBoxTransition(ctx, logistics, b, box.Packed).Permitted)
		assert.True(t, resolver.ResolveContainerTransition(ctx, logistics, c, container.Dispatched).Permitted)
	})

	t.Run("admin override applies to boxes and containers", func(t *testing.T) {
		decision := resolver.ResolveBoxTransition(ctx, admin, b, box.Received)
		assert.True(t, decision.Permitted)
		assert.True(t, decision.Override)
	})

	t.Run("clients and sourcing operators are denied", func(t *testing.T) {
		for _, role := range []services.Role{services.RoleClient, services.RoleSourcingOperator} {
			actor := services.Actor{ID: kernel.NewUUID(), Role: role}
			decision := resolver.ResolveBoxTransition(ctx, actor, b, box.Packed)
			assert.False(t, decision.Permitted)
			assert.Equal(t, errs.DenyWrongRole, decision.Reason)

			decision = resolver.ResolveContainerTransition(ctx, actor, c, container.Dispatched)
			assert.False(t, decision.Permitted)
		}
	})
}
