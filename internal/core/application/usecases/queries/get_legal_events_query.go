package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/guard"
)

var ErrGetLegalEventsQueryIsNotConstructed = errors.New(
	"GetLegalEventsQuery must be created via NewGetLegalEventsQuery constructor",
)

// GetLegalEventsQuery retrieves the events an order currently accepts.
// Clients use it to render only the actions that would not be refused.
//
// Example:
//
//	query, err := NewGetLegalEventsQuery(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid order id: %w", err)
//	}
//
//	handler := NewGetLegalEventsQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get legal events: %w", err)
//	}
//	fmt.Printf("Order %s accepts %v\n", resp.ID, resp.Events)
type GetLegalEventsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLegalEventsQuery creates a query for an order's currently legal
// events. Validates that the order ID is constructed.
func NewGetLegalEventsQuery(orderID kernel.UUID) (GetLegalEventsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetLegalEventsQuery{}, err
	}

	return GetLegalEventsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetLegalEventsQueryIsNotConstructed if validation fails.
func (q GetLegalEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetLegalEventsQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetLegalEventsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetLegalEventsQueryResponse lists the events an order accepts from its
// recorded state. Empty for terminal states.
type GetLegalEventsQueryResponse struct {
	ID     kernel.UUID
	State  order.State
	Events []workflow.Event
}
