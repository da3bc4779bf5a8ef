package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
)

// GetOrderHistoryQueryHandler reads an order's transition audit trail from
// the database. An order with no committed transitions yields an empty list;
// existence checks belong to GetOrderQuery.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for history lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the lookup, oldest transition first.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	transitions := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			source,
			target,
			event,
			occurred_at,
			message
		FROM order_transitions
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var source, target, event int
		var occurredAt time.Time
		var message string

		if err = rows.Scan(&source, &target, &event, &occurredAt, &message); err != nil {
			return nil, err
		}

		transitions = append(transitions, GetOrderHistoryQueryResponse{
			Source:     order.State(source),
			Target:     order.State(target),
			Event:      workflow.Event(event),
			OccurredAt: occurredAt,
			Message:    message,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return transitions, nil
}
