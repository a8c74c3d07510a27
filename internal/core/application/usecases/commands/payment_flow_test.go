package commands_test

import (
	"context"
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memOrderUoW is a transactionless in-memory unit of work for multi-step
// scenarios where wiring mock.InOrder chains per step would obscure the
// behavior under test.
type memOrderUoW struct {
	orders map[kernel.UUID]*order.Order
}

func newMemOrderUoW() *memOrderUoW {
	return &memOrderUoW{orders: make(map[kernel.UUID]*order.Order)}
}

func (u *memOrderUoW) Begin(context.Context) error    { return nil }
func (u *memOrderUoW) Commit(context.Context) error   { return nil }
func (u *memOrderUoW) Rollback(context.Context) error { return nil }

func (u *memOrderUoW) OrderRepository() ports.OrderRepository { return (*memOrderRepo)(u) }

func (u *memOrderUoW) Create() commands.OrderUoW { return u }

type memOrderRepo memOrderUoW

func (r *memOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.orders[o.ID()] = o
	return nil
}

func (r *memOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.orders[o.ID()] = o
	return nil
}

func (r *memOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	return o, nil
}

func (r *memOrderRepo) GetAllByBox(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, nil
}

// The full client payment round trip: submit, operator rejection, retry,
// second submit, operator confirmation. Checks the payment status projection
// a client-facing screen would render after each step.
func TestPaymentFlow_SubmitRejectRetryConfirm(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	client := services.Actor{ID: clientID, Role: services.RoleClient}
	operator := services.Actor{ID: kernel.NewUUID(), Role: services.RoleLogisticsOperator}

	testOrder := orderInState(t, clientID, order.AwaitingPayment)
	assert.Equal(t, order.PaymentPending, testOrder.PaymentStatus())

	uow := newMemOrderUoW()
	uow.orders[testOrder.ID()] = testOrder
	resolver := testResolver()

	submitHandler := commands.NewSubmitPaymentCommandHandler(uow, resolver)
	rejectHandler := commands.NewRejectPaymentCommandHandler(uow, resolver)
	resubmitHandler := commands.NewResubmitPaymentCommandHandler(uow, resolver)
	validateHandler := commands.NewValidatePaymentCommandHandler(uow, resolver)

	submit, err := commands.NewSubmitPaymentCommand(client, testOrder.ID())
	require.NoError(t, err)
	require.NoError(t, submitHandler.Handle(ctx, submit))
	assert.Equal(t, order.PaymentProcessing, testOrder.PaymentStatus())

	reject, err := commands.NewRejectPaymentCommand(operator, testOrder.ID())
	require.NoError(t, err)
	require.NoError(t, rejectHandler.Handle(ctx, reject))
	assert.Equal(t, order.Rejected, testOrder.State())
	assert.Equal(t, order.PaymentFailed, testOrder.PaymentStatus())

	resubmit, err := commands.NewResubmitPaymentCommand(client, testOrder.ID())
	require.NoError(t, err)
	require.NoError(t, resubmitHandler.Handle(ctx, resubmit))
	assert.Equal(t, order.AwaitingPayment, testOrder.State())
	assert.Equal(t, order.PaymentPending, testOrder.PaymentStatus())

	require.NoError(t, submitHandler.Handle(ctx, submit))

	validate, err := commands.NewValidatePaymentCommand(operator, testOrder.ID())
	require.NoError(t, err)
	require.NoError(t, validateHandler.Handle(ctx, validate))
	assert.Equal(t, order.Paid, testOrder.State())
	assert.Equal(t, order.PaymentPaid, testOrder.PaymentStatus())
}

// A client may not confirm or reject their own payment.
func TestPaymentFlow_ClientCannotConfirmOwnPayment(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	client := services.Actor{ID: clientID, Role: services.RoleClient}

	testOrder := orderInState(t, clientID, order.PaymentSubmitted)

	uow := newMemOrderUoW()
	uow.orders[testOrder.ID()] = testOrder
	resolver := testResolver()

	validateHandler := commands.NewValidatePaymentCommandHandler(uow, resolver)
	validate, err := commands.NewValidatePaymentCommand(client, testOrder.ID())
	require.NoError(t, err)

	err = validateHandler.Handle(ctx, validate)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, order.PaymentSubmitted, testOrder.State())

	rejectHandler := commands.NewRejectPaymentCommandHandler(uow, resolver)
	reject, err := commands.NewRejectPaymentCommand(client, testOrder.ID())
	require.NoError(t, err)

	err = rejectHandler.Handle(ctx, reject)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, order.PaymentSubmitted, testOrder.State())
}
