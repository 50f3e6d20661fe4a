package workflowrepo

import (
	"context"

	"orderflow/internal/adapters/out/postgres/pgerr"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Upsert replaces the assignment keyed by order id.
func (r *GormAssignmentRepository) Upsert(ctx context.Context, assignment workflow.Assignment) error {
	dto := assignmentFromDomain(assignment)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"workflow_id", "is_active", "assigned_at"}),
	}).Create(&dto).Error
	return pgerr.Wrap("assign workflow", "workflow", assignment.WorkflowID.String(), err)
}

// Get returns the active assignment of the order.
func (r *GormAssignmentRepository) Get(ctx context.Context, orderID kernel.UUID) (workflow.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return workflow.Assignment{}, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND is_active = ?", orderID.Bytes(), true).
		First(&dto).Error; err != nil {
		return workflow.Assignment{}, pgerr.Wrap("get workflow assignment", "workflow assignment", orderID.String(), err)
	}
	return assignmentToDomain(dto)
}
