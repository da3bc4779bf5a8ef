package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrdersByStateQueryIsNotConstructed = errors.New(
	"GetOrdersByStateQuery must be created via NewGetOrdersByStateQuery constructor",
)

// GetOrdersByStateQuery retrieves all orders whose recorded workflow state
// matches a filter.
//
// Example:
//
//	query, err := NewGetOrdersByStateQuery(order.PaymentPending)
//	if err != nil {
//	    return fmt.Errorf("invalid state filter: %w", err)
//	}
//
//	handler := NewGetOrdersByStateQueryHandler(db)
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("Found %d orders awaiting payment\n", len(orders))
type GetOrdersByStateQuery struct {
	state order.State

	guard guard.ConstructorGuard
}

// NewGetOrdersByStateQuery creates a query filtering orders by state.
// Validates that the state is part of the workflow's state enumeration.
func NewGetOrdersByStateQuery(state order.State) (GetOrdersByStateQuery, error) {
	if err := state.Validate(); err != nil {
		return GetOrdersByStateQuery{}, err
	}

	return GetOrdersByStateQuery{
		state: state,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersByStateQueryIsNotConstructed if validation fails.
func (q GetOrdersByStateQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStateQueryIsNotConstructed)
}

// State returns the state filter.
func (q GetOrdersByStateQuery) State() order.State {
	return q.state
}

// GetOrdersByStateQueryResponse is the flat read model of one matching order.
type GetOrdersByStateQueryResponse struct {
	ID    kernel.UUID
	State order.State
}
