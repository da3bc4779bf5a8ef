package workflow

import (
	"errors"
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstance_Fire_ActionErrorIsSwallowed(t *testing.T) {
	failing := newTable([]transitionRule{
		single(order.Created, SubmitPayment, order.PaymentPending, "notifyPayment", nil,
			func(_ *Vars) error { return errors.New("smtp connection refused") }),
	})
	instance := newInstanceWithTable(kernel.NewUUID(), failing)
	instance.Start()

	err := instance.Fire(SubmitPayment)

	require.NoError(t, err, "a failing action must never block the transition")
	assert.Equal(t, order.PaymentPending, instance.CurrentState(),
		"target state commits despite the action failure")
	assert.Equal(t, "smtp connection refused", instance.Vars().ActionErrors["notifyPaymentError"])
}

func TestTransitionRule_SelectAlternative_FirstMatchingGuardWins(t *testing.T) {
	rule := transitionRule{
		source: order.PaymentChoice,
		event:  SubmitPayment,
		alternatives: []alternative{
			{phase: "first", guard: methodIsCreditCard, target: order.PaymentPending},
			{phase: "second", guard: func(Vars) bool { return true }, target: order.Cancelled},
			{phase: "default", guard: nil, target: order.Paid},
		},
	}

	t.Run("guarded_alternative_wins_over_default", func(t *testing.T) {
		alt, ok := rule.selectAlternative(Vars{PaymentMethod: PaymentMethodCreditCard})
		require.True(t, ok)
		assert.Equal(t, "first", alt.phase)
	})

	t.Run("evaluation_is_top_down", func(t *testing.T) {
		alt, ok := rule.selectAlternative(Vars{})
		require.True(t, ok)
		assert.Equal(t, "second", alt.phase, "earlier true guard beats later alternatives")
	})

	t.Run("no_matching_guard_and_no_default_refuses", func(t *testing.T) {
		guarded := transitionRule{
			source: order.ShippingJunction,
			event:  Prepare,
			alternatives: []alternative{
				{phase: "prepareExpedited", guard: wantsExpedite, target: order.Preparing},
			},
		}

		_, ok := guarded.selectAlternative(Vars{})
		assert.False(t, ok)
	})
}

func TestNewTable_PanicsOnDuplicateRule(t *testing.T) {
	assert.Panics(t, func() {
		newTable([]transitionRule{
			single(order.Created, Cancel, order.Cancelled, "cancel", nil, nil),
			single(order.Created, Cancel, order.Refunded, "cancel", nil, nil),
		})
	})
}
