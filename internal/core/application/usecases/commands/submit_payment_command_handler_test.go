package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitPaymentCommandHandler_Handle_OwnerSubmits(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	testOrder := orderInState(t, clientID, order.AwaitingPayment)

	actor := services.Actor{ID: clientID, Role: services.RoleClient}
	cmd, err := commands.NewSubmitPaymentCommand(actor, testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitPaymentCommandHandler(factory, testResolver())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PaymentSubmitted, testOrder.State())
	assert.Equal(t, order.PaymentProcessing, testOrder.PaymentStatus())
}

func TestSubmitPaymentCommandHandler_Handle_StrangerDenied(t *testing.T) {
	ctx := t.Context()

	testOrder := orderInState(t, kernel.NewUUID(), order.AwaitingPayment)

	stranger := services.Actor{ID: kernel.NewUUID(), Role: services.RoleClient}
	cmd, err := commands.NewSubmitPaymentCommand(stranger, testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitPaymentCommandHandler(factory, testResolver())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)

	var unauthorized *errs.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, errs.DenyNotOwner, unauthorized.Reason)
	assert.Equal(t, order.AwaitingPayment, testOrder.State())
}

func TestSubmitPaymentCommandHandler_Handle_WrongStateDenied(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	testOrder := orderInState(t, clientID, order.Preparing)

	actor := services.Actor{ID: clientID, Role: services.RoleClient}
	cmd, err := commands.NewSubmitPaymentCommand(actor, testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSubmitPaymentCommandHandler(factory, testResolver())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, order.Preparing, testOrder.State())
}
