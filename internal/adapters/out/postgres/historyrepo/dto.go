// Package historyrepo persists the append-only transition audit trail.
// Unlike the order repository it does not go through the unit of work:
// appends run after the relational commit and are allowed to fail without
// affecting the committed transition.
package historyrepo

import (
	"time"

	"github.com/google/uuid"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/ports"
)

// TransitionDTO represents one committed transition row.
type TransitionDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Source     int
	Target     int
	Event      int
	OccurredAt time.Time `gorm:"index"`
	Message    string
}

// TableName specifies the database table name for transition entities.
// Overrides GORM's default naming convention to use "order_transitions".
func (TransitionDTO) TableName() string {
	return "order_transitions"
}

func fromRecord(record ports.TransitionRecord) TransitionDTO {
	return TransitionDTO{
		OrderID:    record.OrderID.Bytes(),
		Source:     int(record.Source),
		Target:     int(record.Target),
		Event:      int(record.Event),
		OccurredAt: record.OccurredAt,
		Message:    record.Message,
	}
}

func toRecord(dto TransitionDTO) (ports.TransitionRecord, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.TransitionRecord{}, err
	}

	return ports.TransitionRecord{
		OrderID:    orderID,
		Source:     order.State(dto.Source),
		Target:     order.State(dto.Target),
		Event:      workflow.Event(dto.Event),
		OccurredAt: dto.OccurredAt,
		Message:    dto.Message,
	}, nil
}
