package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/errs"
)

// GetLegalEventsQueryHandler answers which events an order currently accepts.
// Reads the recorded state from the database and consults the transition
// table; structural legality only, guards are evaluated when the event
// actually fires.
type GetLegalEventsQueryHandler struct {
	db *gorm.DB
}

// NewGetLegalEventsQueryHandler creates a handler for legal event lookups.
// Requires a GORM database connection for query execution.
func NewGetLegalEventsQueryHandler(db *gorm.DB) GetLegalEventsQueryHandler {
	return GetLegalEventsQueryHandler{db: db}
}

// Handle executes the lookup. Returns an error wrapping errs.ErrObjectNotFound
// when no order exists under the given identifier.
func (h GetLegalEventsQueryHandler) Handle(
	ctx context.Context,
	query GetLegalEventsQuery,
) (GetLegalEventsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLegalEventsQueryResponse{}, err
	}

	var id uuid.UUID
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&id, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetLegalEventsQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID())
		}
		return GetLegalEventsQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetLegalEventsQueryResponse{}, err
	}

	state := order.State(status)
	if err = state.Validate(); err != nil {
		return GetLegalEventsQueryResponse{}, err
	}

	return GetLegalEventsQueryResponse{
		ID:     orderID,
		State:  state,
		Events: workflow.DefaultTable().LegalEvents(state),
	}, nil
}
