package queries_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_Valid(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, id, query.OrderID())
}

func TestNewGetOrderQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetOrderQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetOrdersByStateQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrdersByStateQuery(order.PaymentPending)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, order.PaymentPending, query.State())
}

func TestNewGetOrdersByStateQuery_UnknownState(t *testing.T) {
	_, err := queries.NewGetOrdersByStateQuery(order.Unknown)
	require.Error(t, err)
}

func TestGetOrdersByStateQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrdersByStateQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrdersByStateQueryIsNotConstructed)
}

func TestNewGetLegalEventsQuery_Valid(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetLegalEventsQuery(id)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, id, query.OrderID())
}

func TestGetLegalEventsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetLegalEventsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetLegalEventsQueryIsNotConstructed)
}

func TestNewGetOrderHistoryQuery_Valid(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetOrderHistoryQuery(id)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, id, query.OrderID())
}

func TestGetOrderHistoryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderHistoryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderHistoryQueryIsNotConstructed)
}
