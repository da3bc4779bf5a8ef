package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/domain/services"
)

type MockSnapshotStore struct{ mock.Mock }

func (m *MockSnapshotStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockSnapshotStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func newTestRecoveryService(store *MockSnapshotStore) *services.WorkflowRecoveryService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewWorkflowRecoveryService(store, services.WorkflowRecoveryConfig{
		RetryBackoff: time.Nanosecond,
		ReplayDelay:  0,
	}, logger)
}

func TestWorkflowRecoveryService_SnapshotKey(t *testing.T) {
	orderID := kernel.NewUUID()
	svc := newTestRecoveryService(&MockSnapshotStore{})

	assert.Equal(t, services.DefaultSnapshotKeyPrefix+orderID.String(), svc.SnapshotKey(orderID))
}

func TestWorkflowRecoveryService_Persist_WritesStateNameWithTTL(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	instance := workflow.NewInstance(orderID)
	instance.Start()

	store := &MockSnapshotStore{}
	svc := newTestRecoveryService(store)
	store.On("Set", ctx, svc.SnapshotKey(orderID), "CREATED", services.DefaultSnapshotTTL).
		Return(nil)

	err := svc.Persist(ctx, instance)

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestWorkflowRecoveryService_Persist_WrapsStoreFailure(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	instance := workflow.NewInstance(orderID)
	instance.Start()

	store := &MockSnapshotStore{}
	store.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection refused"))
	svc := newTestRecoveryService(store)

	err := svc.Persist(ctx, instance)

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrSnapshotPersist)

	var persistErr *services.SnapshotPersistError
	require.ErrorAs(t, err, &persistErr)
	assert.True(t, orderID.IsEqual(persistErr.OrderID))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWorkflowRecoveryService_Restore_AbsentKeyYieldsCreated(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	store := &MockSnapshotStore{}
	store.On("Get", ctx, mock.Anything).Return("", false, nil)
	svc := newTestRecoveryService(store)

	instance, err := svc.Restore(ctx, orderID)

	require.NoError(t, err)
	assert.Equal(t, order.Created, instance.CurrentState())
	assert.True(t, orderID.IsEqual(instance.ID()))
}

func TestWorkflowRecoveryService_Restore_CreatedSnapshotNeedsNoReplay(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	store := &MockSnapshotStore{}
	store.On("Get", ctx, mock.Anything).Return("CREATED", true, nil)
	svc := newTestRecoveryService(store)

	instance, err := svc.Restore(ctx, orderID)

	require.NoError(t, err)
	assert.Equal(t, order.Created, instance.CurrentState())
	assert.True(t, instance.Vars().SubmittedAt.IsZero())
}

func TestWorkflowRecoveryService_Restore_ReplaysPathToStoredState(t *testing.T) {
	tests := []struct {
		stored string
		want   order.State
	}{
		{"PAYMENT_CHOICE", order.PaymentChoice},
		{"PAYMENT_PENDING", order.PaymentPending},
		{"PAID", order.Paid},
		{"SHIPPING_JUNCTION", order.ShippingJunction},
		{"PREPARING", order.Preparing},
		{"SHIPPED", order.Shipped},
		{"DELIVERED", order.Delivered},
		{"CANCELLED", order.Cancelled},
		{"REFUNDED", order.Refunded},
	}

	for _, test := range tests {
		t.Run(test.stored, func(t *testing.T) {
			ctx := t.Context()
			orderID := kernel.NewUUID()

			store := &MockSnapshotStore{}
			store.On("Get", ctx, mock.Anything).Return(test.stored, true, nil)
			svc := newTestRecoveryService(store)

			instance, err := svc.Restore(ctx, orderID)

			require.NoError(t, err)
			assert.Equal(t, test.want, instance.CurrentState())
		})
	}
}

func TestWorkflowRecoveryService_Restore_RestoredInstanceAcceptsNextEvent(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	store := &MockSnapshotStore{}
	store.On("Get", ctx, mock.Anything).Return("SHIPPED", true, nil)
	svc := newTestRecoveryService(store)

	instance, err := svc.Restore(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, order.Shipped, instance.CurrentState())

	// The only legal continuation from SHIPPED is delivery.
	assert.Equal(t, []workflow.Event{workflow.Deliver}, instance.LegalEvents())
	require.NoError(t, instance.Fire(workflow.Deliver))
	assert.Equal(t, order.Delivered, instance.CurrentState())
}

func TestWorkflowRecoveryService_Restore_RestoredCancelledAcceptsRefund(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	store := &MockSnapshotStore{}
	store.On("Get", ctx, mock.Anything).Return("CANCELLED", true, nil)
	svc := newTestRecoveryService(store)

	instance, err := svc.Restore(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, order.Cancelled, instance.CurrentState())

	// CANCELLED is not fully terminal; a restored instance must still take
	// the refund regardless of the path the live instance actually walked.
	require.NoError(t, instance.Fire(workflow.Refund))
	assert.Equal(t, order.Refunded, instance.CurrentState())
}

func TestWorkflowRecoveryService_Restore_ReplaySynthesizesVars(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	store := &MockSnapshotStore{}
	store.On("Get", ctx, mock.Anything).Return("SHIPPED", true, nil)
	svc := newTestRecoveryService(store)

	instance, err := svc.Restore(ctx, orderID)
	require.NoError(t, err)

	vars := instance.Vars()
	assert.False(t, vars.PaidAt.IsZero())
	assert.NotEmpty(t, vars.TrackingID)
}

func TestWorkflowRecoveryService_Restore_MalformedValueYieldsCreated(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	store := &MockSnapshotStore{}
	store.On("Get", ctx, mock.Anything).Return("NOT_A_STATE", true, nil)
	svc := newTestRecoveryService(store)

	instance, err := svc.Restore(ctx, orderID)

	require.NoError(t, err)
	assert.Equal(t, order.Created, instance.CurrentState())
}

func TestWorkflowRecoveryService_Restore_RetriesReadThenSucceeds(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	store := &MockSnapshotStore{}
	store.On("Get", ctx, mock.Anything).Return("", false, errors.New("i/o timeout")).Twice()
	store.On("Get", ctx, mock.Anything).Return("PAID", true, nil).Once()
	svc := newTestRecoveryService(store)

	instance, err := svc.Restore(ctx, orderID)

	require.NoError(t, err)
	assert.Equal(t, order.Paid, instance.CurrentState())
	store.AssertNumberOfCalls(t, "Get", 3)
}

func TestWorkflowRecoveryService_Restore_ExhaustedRetriesFail(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	store := &MockSnapshotStore{}
	store.On("Get", ctx, mock.Anything).Return("", false, errors.New("i/o timeout"))
	svc := newTestRecoveryService(store)

	instance, err := svc.Restore(ctx, orderID)

	require.Error(t, err)
	assert.Nil(t, instance)
	assert.ErrorIs(t, err, services.ErrSnapshotRecovery)

	var recoveryErr *services.SnapshotRecoveryError
	require.ErrorAs(t, err, &recoveryErr)
	assert.Equal(t, 3, recoveryErr.Attempts)
	assert.Contains(t, recoveryErr.Cause.Error(), "i/o timeout")
	store.AssertNumberOfCalls(t, "Get", 3)
}

func TestWorkflowRecoveryService_Materialize_DoesNotTouchStore(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	store := &MockSnapshotStore{}
	svc := newTestRecoveryService(store)

	instance, err := svc.Materialize(ctx, orderID, order.Preparing)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, instance.CurrentState())
	store.AssertNotCalled(t, "Get")
	store.AssertNotCalled(t, "Set")
}

func TestWorkflowRecoveryService_PersistRestoreRoundTrip(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	instance := workflow.NewInstance(orderID)
	instance.Start()
	require.NoError(t, instance.Fire(workflow.SubmitPayment))
	require.NoError(t, instance.Fire(workflow.PaymentSucceeded))

	var storedValue string
	store := &MockSnapshotStore{}
	store.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			storedValue = args.String(2)
		}).Return(nil)
	svc := newTestRecoveryService(store)

	require.NoError(t, svc.Persist(ctx, instance))
	require.Equal(t, "PAID", storedValue)

	store.On("Get", ctx, svc.SnapshotKey(orderID)).Return(storedValue, true, nil)

	restored, err := svc.Restore(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, order.Paid, restored.CurrentState())
}
