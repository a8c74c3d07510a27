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

func TestAdvanceOrderCommandHandler_Handle_OperatorAdvancesChain(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	testOrder := orderInState(t, clientID, order.QuoteReview)
	versionBefore := testOrder.Version()

	actor := services.Actor{ID: kernel.NewUUID(), Role: services.RoleLogisticsOperator}
	cmd, err := commands.NewAdvanceOrderCommand(actor, testOrder.ID(), order.AwaitingPayment)
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

	handler := commands.NewAdvanceOrderCommandHandler(factory, testResolver())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.AwaitingPayment, testOrder.State())
	assert.Equal(t, versionBefore+1, testOrder.Version())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_AdminOverrideSkipsChain(t *testing.T) {
	ctx := t.Context()

	testOrder := orderInState(t, kernel.NewUUID(), order.QuoteReview)

	actor := services.Actor{ID: kernel.NewUUID(), Role: services.RoleAdmin}
	cmd, err := commands.NewAdvanceOrderCommand(actor, testOrder.ID(), order.Shipped)
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

	handler := commands.NewAdvanceOrderCommandHandler(factory, testResolver())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Shipped, testOrder.State())
}

func TestAdvanceOrderCommandHandler_Handle_ClientDenied(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	testOrder := orderInState(t, clientID, order.QuoteReview)

	actor := services.Actor{ID: clientID, Role: services.RoleClient}
	cmd, err := commands.NewAdvanceOrderCommand(actor, testOrder.ID(), order.AwaitingPayment)
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

	handler := commands.NewAdvanceOrderCommandHandler(factory, testResolver())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, order.QuoteReview, testOrder.State())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAdvanceOrderCommandHandler_Handle_OperatorCannotSkip(t *testing.T) {
	ctx := t.Context()

	testOrder := orderInState(t, kernel.NewUUID(), order.QuoteReview)

	actor := services.Actor{ID: kernel.NewUUID(), Role: services.RoleLogisticsOperator}
	cmd, err := commands.NewAdvanceOrderCommand(actor, testOrder.ID(), order.Paid)
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

	handler := commands.NewAdvanceOrderCommandHandler(factory, testResolver())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.QuoteReview, testOrder.State())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAdvanceOrderCommandHandler_Handle_AssignedOperatorShield(t *testing.T) {
	ctx := t.Context()

	testOrder := orderInState(t, kernel.NewUUID(), order.QuoteReview)
	assigned := kernel.NewUUID()
	require.NoError(t, testOrder.AssignLogisticsOperator(assigned))

	stranger := services.Actor{ID: kernel.NewUUID(), Role: services.RoleLogisticsOperator}
	cmd, err := commands.NewAdvanceOrderCommand(stranger, testOrder.ID(), order.AwaitingPayment)
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

	handler := commands.NewAdvanceOrderCommandHandler(factory, testResolver())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)

	var unauthorized *errs.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, errs.DenyNotOwner, unauthorized.Reason)
}
