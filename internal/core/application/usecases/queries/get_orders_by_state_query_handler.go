package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/kernel"
)

// GetOrdersByStateQueryHandler lists orders in a given workflow state from
// the database.
type GetOrdersByStateQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStateQueryHandler creates a handler for state-filtered order
// listings. Requires a GORM database connection for query execution.
func NewGetOrdersByStateQueryHandler(db *gorm.DB) GetOrdersByStateQueryHandler {
	return GetOrdersByStateQueryHandler{db: db}
}

// Handle executes the listing. Results are sorted by order ID for consistent
// output; an empty result is a valid response, not an error.
func (h GetOrdersByStateQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStateQuery,
) ([]GetOrdersByStateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersByStateQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status
		FROM orders
		WHERE status = ?
		ORDER BY id
	`, query.State()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var status int

		if err = rows.Scan(&id, &status); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, GetOrdersByStateQueryResponse{
			ID:    orderID,
			State: query.State(),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
