package historyrepo

import (
	"context"

	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
)

// GormTransitionHistoryRepository implements TransitionHistoryRepository
// using GORM.
type GormTransitionHistoryRepository struct {
	db *gorm.DB
}

// NewGormTransitionHistoryRepository creates a new GORM transition history
// repository.
func NewGormTransitionHistoryRepository(db *gorm.DB) *GormTransitionHistoryRepository {
	return &GormTransitionHistoryRepository{db: db}
}

// Append stores one transition record.
func (r *GormTransitionHistoryRepository) Append(ctx context.Context, record ports.TransitionRecord) error {
	dto := fromRecord(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOrder returns the recorded transitions of an order, oldest first.
func (r *GormTransitionHistoryRepository) GetByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]ports.TransitionRecord, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransitionDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]ports.TransitionRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, recordErr := toRecord(dto)
		if recordErr != nil {
			return nil, recordErr
		}
		records = append(records, record)
	}

	return records, nil
}
