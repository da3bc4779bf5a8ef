package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/guard"
)

var (
	ErrFireEventCommandIsNotConstructed = errors.New(
		"FireEventCommand must be created via NewFireEventCommand constructor",
	)
	ErrAmountIsInvalid        = errors.New("amount must be greater than 0")
	ErrPaymentMethodIsInvalid = errors.New("payment method must be CREDIT_CARD or BANK_TRANSFER")
)

// FireEventVars carries optional variable writes that accompany an event.
// Nil fields are left untouched; set fields are applied to the workflow
// instance before the event fires, so guards observe them.
type FireEventVars struct {
	Amount           *float64
	ShippingAddress  *string
	PaymentMethod    *string
	ExpediteShipping *bool
}

// FireEventCommand represents a request to advance an order's workflow by one
// event.
//
// Example:
//
//	method := workflow.PaymentMethodCreditCard
//	cmd, err := NewFireEventCommand(orderID, workflow.SubmitPayment, commands.FireEventVars{
//	    PaymentMethod: &method,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid event request: %w", err)
//	}
//
//	handler := NewFireEventCommandHandler(uowFactory, recovery, history, locks, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to advance order: %w", err)
//	}
type FireEventCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	event   workflow.Event
	vars    FireEventVars

	guard guard.ConstructorGuard
}

// NewFireEventCommand creates a command to fire an event against an order's
// workflow. Validates the order ID, event and any accompanying variable
// writes. Returns an error if any validation fails.
func NewFireEventCommand(
	orderID kernel.UUID,
	event workflow.Event,
	vars FireEventVars,
) (FireEventCommand, error) {
	eventCommand := FireEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		eventCommand.setOrderID(orderID),
		eventCommand.setEvent(event),
		eventCommand.setVars(vars),
	); err != nil {
		return FireEventCommand{}, err
	}

	return eventCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrFireEventCommandIsNotConstructed if validation fails.
func (c FireEventCommand) Validate() error {
	return c.guard.Validate(ErrFireEventCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c FireEventCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Event returns the workflow event to fire.
func (c FireEventCommand) Event() workflow.Event {
	return c.event
}

// ApplyVars writes the command's variable payload onto a workflow variable
// bag, leaving unset fields alone.
func (c FireEventCommand) ApplyVars(vars *workflow.Vars) {
	if c.vars.Amount != nil {
		vars.Amount = *c.vars.Amount
	}
	if c.vars.ShippingAddress != nil {
		vars.ShippingAddress = *c.vars.ShippingAddress
	}
	if c.vars.PaymentMethod != nil {
		vars.PaymentMethod = *c.vars.PaymentMethod
	}
	if c.vars.ExpediteShipping != nil {
		vars.ExpediteShipping = *c.vars.ExpediteShipping
	}
}

func (c *FireEventCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *FireEventCommand) setEvent(event workflow.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	c.event = event
	return nil
}

func (c *FireEventCommand) setVars(vars FireEventVars) error {
	if vars.Amount != nil && *vars.Amount <= 0 {
		return ErrAmountIsInvalid
	}
	if vars.PaymentMethod != nil {
		switch *vars.PaymentMethod {
		case workflow.PaymentMethodCreditCard, workflow.PaymentMethodBankTransfer:
		default:
			return ErrPaymentMethodIsInvalid
		}
	}

	c.vars = vars
	return nil
}
