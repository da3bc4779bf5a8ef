package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_String(t *testing.T) {
	testCases := []struct {
		state order.State
		want  string
	}{
		{order.Created, "CREATED"},
		{order.PaymentChoice, "PAYMENT_CHOICE"},
		{order.PaymentPending, "PAYMENT_PENDING"},
		{order.Paid, "PAID"},
		{order.ShippingJunction, "SHIPPING_JUNCTION"},
		{order.Preparing, "PREPARING"},
		{order.Shipped, "SHIPPED"},
		{order.Delivered, "DELIVERED"},
		{order.Cancelled, "CANCELLED"},
		{order.Refunded, "REFUNDED"},
		{order.Unknown, "UNKNOWN"},
		{order.State(99), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.state.String())
		})
	}
}

func TestStateFromString(t *testing.T) {
	t.Run("round_trips_every_valid_state", func(t *testing.T) {
		for _, s := range order.AllStates() {
			parsed, err := order.StateFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects_names_outside_the_enumeration", func(t *testing.T) {
		for _, name := range []string{"", "created", "SHIPPED ", "IN_TRANSIT"} {
			_, err := order.StateFromString(name)
			require.Error(t, err, "name %q", name)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestState_Validate(t *testing.T) {
	t.Run("all_declared_states_are_valid", func(t *testing.T) {
		for _, s := range order.AllStates() {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("unknown_and_out_of_range_are_invalid", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.State(42).Validate())
	})
}

func TestState_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Refunded.IsTerminal())

	// Cancelled still accepts a refund, so it is not fully terminal.
	assert.False(t, order.Cancelled.IsTerminal())

	for _, s := range []order.State{
		order.Created, order.PaymentChoice, order.PaymentPending,
		order.Paid, order.ShippingJunction, order.Preparing, order.Shipped,
	} {
		assert.False(t, s.IsTerminal(), "state %s", s)
	}
}
