package commands_test

import (
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoredOrder(
	t *testing.T,
	id kernel.UUID,
	status order.Status,
	legStatuses map[order.Leg]order.LegStatus,
) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(
		id, "client-1", "Acme Corp", "2 boxes", "221B Baker Street",
		status, legStatuses, time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func allPending() map[order.Leg]order.LegStatus {
	return map[order.Leg]order.LegStatus{
		order.CMS: order.LegPending,
		order.WMS: order.LegPending,
		order.ROS: order.LegPending,
	}
}

func allConfirmed() map[order.Leg]order.LegStatus {
	return map[order.Leg]order.LegStatus{
		order.CMS: order.LegConfirmed,
		order.WMS: order.LegConfirmed,
		order.ROS: order.LegConfirmed,
	}
}

func testReconciler(compensator *MockCompensationRequester) *commands.ConfirmationReconciler {
	// Short spacing keeps the retry tests fast; the attempt bound stays at the
	// production value.
	return commands.NewConfirmationReconciler(
		compensator, commands.DefaultReconcileAttempts, 5*time.Millisecond, testLogger(),
	)
}

func TestConfirmLegCommandHandler_Handle_ConfirmsLeg(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewConfirmLegCommand(order.CMS, orderID)
	require.NoError(t, err)

	aggregate := restoredOrder(t, orderID, order.Submitted, allPending())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, orderID).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.LegStatus(order.CMS) == order.LegConfirmed && o.Status() == order.Submitted
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	compensator := new(MockCompensationRequester)

	h := commands.NewConfirmLegCommandHandler(factory, testReconciler(compensator), testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	compensator.AssertNotCalled(t, "RequestCompensation", mock.Anything, mock.Anything)
}

func TestConfirmLegCommandHandler_Handle_ThirdConfirmationCompletes(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewConfirmLegCommand(order.WMS, orderID)
	require.NoError(t, err)

	legStatuses := allConfirmed()
	legStatuses[order.WMS] = order.LegPending
	aggregate := restoredOrder(t, orderID, order.Submitted, legStatuses)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("GetForUpdate", mock.Anything, orderID).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.Completed && o.LegStatus(order.WMS) == order.LegConfirmed
	})).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	compensator := new(MockCompensationRequester)

	h := commands.NewConfirmLegCommandHandler(factory, testReconciler(compensator), testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmLegCommandHandler_Handle_TerminalOrder_DropsConfirmation(t *testing.T) {
	terminalStates := []struct {
		name        string
		status      order.Status
		legStatuses map[order.Leg]order.LegStatus
	}{
		{name: "completed", status: order.Completed, legStatuses: allConfirmed()},
		{name: "failed", status: order.Failed, legStatuses: map[order.Leg]order.LegStatus{
			order.CMS: order.LegFailed, order.WMS: order.LegFailed, order.ROS: order.LegFailed,
		}},
	}

	for _, tc := range terminalStates {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			orderID := kernel.NewUUID()
			cmd, err := commands.NewConfirmLegCommand(order.ROS, orderID)
			require.NoError(t, err)

			aggregate := restoredOrder(t, orderID, tc.status, tc.legStatuses)

			repo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			repo.On("GetForUpdate", mock.Anything, orderID).Return(aggregate, nil).Once()

			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			compensator := new(MockCompensationRequester)

			h := commands.NewConfirmLegCommandHandler(factory, testReconciler(compensator), testLogger())
			require.NoError(t, h.Handle(ctx, cmd))

			// Dropped, not applied: no write, no commit, no compensation.
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", ctx)
			compensator.AssertNotCalled(t, "RequestCompensation", mock.Anything, mock.Anything)
			assert.Equal(t, tc.status, aggregate.Status())
		})
	}
}

func TestConfirmLegCommandHandler_Handle_OrderVisibleOnRetry(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewConfirmLegCommand(order.WMS, orderID)
	require.NoError(t, err)

	aggregate := restoredOrder(t, orderID, order.Submitted, allPending())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	// Miss on the initial attempt and the first retry, visible on the second.
	repo.On("GetForUpdate", mock.Anything, orderID).
		Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Twice()
	repo.On("GetForUpdate", mock.Anything, orderID).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.LegStatus(order.WMS) == order.LegConfirmed
	})).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	compensator := new(MockCompensationRequester)

	h := commands.NewConfirmLegCommandHandler(factory, testReconciler(compensator), testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "GetForUpdate", 3)
	compensator.AssertNotCalled(t, "RequestCompensation", mock.Anything, mock.Anything)
}

func TestConfirmLegCommandHandler_Handle_NeverCreatedOrder_EscalatesOnce(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewConfirmLegCommand(order.CMS, orderID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("GetForUpdate", mock.Anything, orderID).
		Return(nil, errs.NewObjectNotFoundError("order", orderID.String()))

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	compensator := new(MockCompensationRequester)
	compensator.On("RequestCompensation", mock.Anything, orderID.String()).Return(nil).Once()

	h := commands.NewConfirmLegCommandHandler(factory, testReconciler(compensator), testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	// Initial lookup plus exactly five retries, then exactly one escalation.
	repo.AssertNumberOfCalls(t, "GetForUpdate", 1+commands.DefaultReconcileAttempts)
	compensator.AssertNumberOfCalls(t, "RequestCompensation", 1)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestConfirmLegCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ConfirmLegCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	compensator := new(MockCompensationRequester)

	h := commands.NewConfirmLegCommandHandler(factory, testReconciler(compensator), testLogger())
	require.Error(t, h.Handle(ctx, cmd))
}
