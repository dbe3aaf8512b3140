package commands_test

import (
	"errors"
	"testing"
	"time"

	"peermint/internal/core/application/usecases/commands"
	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"
	"peermint/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcknowledgeReleaseCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	creator := kernel.NewUUID()
	helper := kernel.NewUUID()
	testOrder := newPaidOrder(t, creator, helper, time.Time{})

	cmd, err := commands.NewAcknowledgeReleaseCommand(testOrder.ID(), creator)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	custodian := new(MockEscrowCustodian)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("EscrowCustodian").Return(custodian).Once(),
		// principal first, then the 5 percent fee
		custodian.On("Disburse", mock.Anything, testOrder.Authority(), helper, int64(1_000_000)).Return(nil).Once(),
		custodian.On("Disburse", mock.Anything, testOrder.Authority(), helper, int64(50_000)).Return(nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcknowledgeReleaseCommandHandler(factory, services.NewPayoutCalculator())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Released, testOrder.Status())
	require.NotNil(t, testOrder.ReleasedAt())
	custodian.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcknowledgeReleaseCommandHandler_Handle_ZeroFeeSingleDisbursal(t *testing.T) {
	ctx := t.Context()
	creator := kernel.NewUUID()
	helper := kernel.NewUUID()

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), creator, "USDC", 1_000_000, 8_350_000, time.Time{}, 0, 1, 42, "", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, testOrder.Join(helper))
	require.NoError(t, testOrder.MarkPaid(helper, nil, time.Now().UTC()))

	cmd, err := commands.NewAcknowledgeReleaseCommand(testOrder.ID(), creator)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	custodian := new(MockEscrowCustodian)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("EscrowCustodian").Return(custodian).Once(),
		custodian.On("Disburse", mock.Anything, testOrder.Authority(), helper, int64(1_000_000)).Return(nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcknowledgeReleaseCommandHandler(factory, services.NewPayoutCalculator())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	custodian.AssertNumberOfCalls(t, "Disburse", 1)
}

func TestAcknowledgeReleaseCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AcknowledgeReleaseCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := commands.NewAcknowledgeReleaseCommandHandler(factory, services.NewPayoutCalculator())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAcknowledgeReleaseCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAcknowledgeReleaseCommandHandler_Handle_HelperCannotRelease(t *testing.T) {
	ctx := t.Context()
	creator := kernel.NewUUID()
	helper := kernel.NewUUID()
	testOrder := newPaidOrder(t, creator, helper, time.Time{})

	cmd, err := commands.NewAcknowledgeReleaseCommand(testOrder.ID(), helper)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcknowledgeReleaseCommandHandler(factory, services.NewPayoutCalculator())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrUnauthorized)
	assert.Equal(t, order.PaidLocal, testOrder.Status())
}

func TestAcknowledgeReleaseCommandHandler_Handle_NotPaid(t *testing.T) {
	ctx := t.Context()
	creator := kernel.NewUUID()
	testOrder := newJoinedOrder(t, creator, kernel.NewUUID(), time.Time{})

	cmd, err := commands.NewAcknowledgeReleaseCommand(testOrder.ID(), creator)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcknowledgeReleaseCommandHandler(factory, services.NewPayoutCalculator())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestAcknowledgeReleaseCommandHandler_Handle_DisburseError(t *testing.T) {
	ctx := t.Context()
	creator := kernel.NewUUID()
	helper := kernel.NewUUID()
	testOrder := newPaidOrder(t, creator, helper, time.Time{})

	cmd, err := commands.NewAcknowledgeReleaseCommand(testOrder.ID(), creator)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	custodian := new(MockEscrowCustodian)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("EscrowCustodian").Return(custodian).Once(),
		custodian.On("Disburse", mock.Anything, testOrder.Authority(), helper, int64(1_000_000)).
			Return(errors.New("insufficient escrow")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcknowledgeReleaseCommandHandler(factory, services.NewPayoutCalculator())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.EqualError(t, err, "insufficient escrow")
	custodian.AssertExpectations(t)
}
