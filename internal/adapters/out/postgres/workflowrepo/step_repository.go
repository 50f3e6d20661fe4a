package workflowrepo

import (
	"context"

	"orderflow/internal/adapters/out/postgres/pgerr"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStepRepository implements ports.StepRepository using GORM.
type GormStepRepository struct {
	db *gorm.DB
}

func NewGormStepRepository(db *gorm.DB) *GormStepRepository {
	return &GormStepRepository{db: db}
}

// Add stores a new step. A step order already used in the workflow yields a
// ConflictError, an unknown workflow an ObjectNotFoundError.
func (r *GormStepRepository) Add(ctx context.Context, step *workflow.Step) error {
	if err := step.Validate(); err != nil {
		return err
	}

	dto := stepFromDomain(step)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Wrap("add step", "workflow", step.WorkflowID().String(), err)
	}
	return nil
}

func (r *GormStepRepository) Update(ctx context.Context, step *workflow.Step) error {
	if err := step.Validate(); err != nil {
		return err
	}

	dto := stepFromDomain(step)
	result := r.db.WithContext(ctx).
		Model(&StepDTO{}).
		Where("id = ?", dto.ID).
		Select("step_order", "status_name", "conditions", "actions", "requires_approval", "approval_role", "notifications").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Wrap("update step", "step", step.ID().String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("step", step.ID().String())
	}
	return nil
}

func (r *GormStepRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&StepDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Wrap("delete step", "step", id.String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("step", id.String())
	}
	return nil
}

func (r *GormStepRepository) Get(ctx context.Context, id kernel.UUID) (*workflow.Step, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StepDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Wrap("get step", "step", id.String(), err)
	}
	return stepToDomain(dto)
}

func (r *GormStepRepository) ListByWorkflow(ctx context.Context, workflowID kernel.UUID) ([]*workflow.Step, error) {
	if err := workflowID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StepDTO
	if err := r.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID.Bytes()).
		Order("step_order").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Store("list steps", err)
	}

	steps := make([]*workflow.Step, 0, len(dtos))
	for _, dto := range dtos {
		s, err := stepToDomain(dto)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}
