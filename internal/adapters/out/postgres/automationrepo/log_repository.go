package automationrepo

import (
	"context"

	"orderflow/internal/adapters/out/postgres/pgerr"
	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLogRepository implements ports.AutomationLogRepository using GORM.
type GormLogRepository struct {
	db *gorm.DB
}

func NewGormLogRepository(db *gorm.DB) *GormLogRepository {
	return &GormLogRepository{db: db}
}

// Append inserts the log row. Re-appending the same log id is a no-op.
func (r *GormLogRepository) Append(ctx context.Context, log automation.Log) error {
	dto := logFromDomain(log)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
	return pgerr.Store("append automation log", err)
}

// List returns matching log rows, oldest first.
func (r *GormLogRepository) List(ctx context.Context, filter ports.AutomationLogFilter) ([]automation.Log, error) {
	q := r.db.WithContext(ctx).Order("executed_at, id")
	if filter.OrderID != nil {
		q = q.Where("order_id = ?", filter.OrderID.Bytes())
	}
	if filter.RuleID != nil {
		q = q.Where("rule_id = ?", filter.RuleID.Bytes())
	}

	var dtos []LogDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, pgerr.Store("list automation logs", err)
	}

	logs := make([]automation.Log, 0, len(dtos))
	for _, dto := range dtos {
		l, err := logToDomain(dto)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}
