package historyrepo

import (
	"context"

	"orderflow/internal/adapters/out/postgres/pgerr"
	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormHistoryRepository implements ports.HistoryRepository using GORM. It only
// ever inserts.
type GormHistoryRepository struct {
	db *gorm.DB
}

func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append inserts the entry. A retried append of the same entry id is a no-op.
func (r *GormHistoryRepository) Append(ctx context.Context, entry history.Entry) error {
	dto := fromDomain(entry)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
	return pgerr.Store("append status history", err)
}

func (r *GormHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]history.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Store("list status history", err)
	}

	entries := make([]history.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
