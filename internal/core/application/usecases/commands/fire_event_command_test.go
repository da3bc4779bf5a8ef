package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFireEventCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewFireEventCommand(id, workflow.SubmitPayment, commands.FireEventVars{})
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, workflow.SubmitPayment, cmd.Event())
	assert.NoError(t, cmd.Validate())
}

func TestNewFireEventCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewFireEventCommand(invalidID, workflow.SubmitPayment, commands.FireEventVars{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewFireEventCommand_UnknownEvent(t *testing.T) {
	id := kernel.NewUUID()
	_, err := commands.NewFireEventCommand(id, workflow.EventUnknown, commands.FireEventVars{})
	require.Error(t, err)
}

func TestNewFireEventCommand_InvalidAmount(t *testing.T) {
	id := kernel.NewUUID()
	amount := -5.0
	_, err := commands.NewFireEventCommand(id, workflow.SubmitPayment, commands.FireEventVars{
		Amount: &amount,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAmountIsInvalid)
}

func TestNewFireEventCommand_InvalidPaymentMethod(t *testing.T) {
	id := kernel.NewUUID()
	method := "CASH_ON_DELIVERY"
	_, err := commands.NewFireEventCommand(id, workflow.SubmitPayment, commands.FireEventVars{
		PaymentMethod: &method,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPaymentMethodIsInvalid)
}

func TestFireEventCommand_ApplyVars(t *testing.T) {
	id := kernel.NewUUID()
	amount := 49.90
	method := workflow.PaymentMethodCreditCard
	expedite := true
	cmd, err := commands.NewFireEventCommand(id, workflow.SubmitPayment, commands.FireEventVars{
		Amount:           &amount,
		PaymentMethod:    &method,
		ExpediteShipping: &expedite,
	})
	require.NoError(t, err)

	vars := workflow.Vars{ShippingAddress: "12 Rose Lane"}
	cmd.ApplyVars(&vars)

	assert.InEpsilon(t, 49.90, vars.Amount, 1e-9)
	assert.Equal(t, workflow.PaymentMethodCreditCard, vars.PaymentMethod)
	assert.True(t, vars.ExpediteShipping)
	// Unset fields stay untouched.
	assert.Equal(t, "12 Rose Lane", vars.ShippingAddress)
}

func TestFireEventCommand_ZeroValueFailsValidation(t *testing.T) {
	var cmd commands.FireEventCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrFireEventCommandIsNotConstructed)
}

func TestNewRefreshSnapshotsCommand(t *testing.T) {
	cmd := commands.NewRefreshSnapshotsCommand()
	assert.NoError(t, cmd.Validate())
}

func TestRefreshSnapshotsCommand_ZeroValueFailsValidation(t *testing.T) {
	var cmd commands.RefreshSnapshotsCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRefreshSnapshotsCommandIsNotConstructed)
}
