package workflowrepo

import (
	"context"
	"time"

	"orderflow/internal/adapters/out/postgres/pgerr"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkflowRepository implements ports.WorkflowRepository using GORM.
type GormWorkflowRepository struct {
	db *gorm.DB
}

func NewGormWorkflowRepository(db *gorm.DB) *GormWorkflowRepository {
	return &GormWorkflowRepository{db: db}
}

func (r *GormWorkflowRepository) Add(ctx context.Context, wf *workflow.Workflow) error {
	if err := wf.Validate(); err != nil {
		return err
	}

	dto := workflowFromDomain(wf)
	if err := r.db.WithContext(ctx).Omit("Steps", "Assignments").Create(&dto).Error; err != nil {
		return pgerr.Wrap("add workflow", "workflow", wf.ID().String(), err)
	}
	return nil
}

func (r *GormWorkflowRepository) Update(ctx context.Context, wf *workflow.Workflow) error {
	if err := wf.Validate(); err != nil {
		return err
	}

	dto := workflowFromDomain(wf)
	dto.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&WorkflowDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "description", "is_default", "is_active", "trigger_conditions", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Wrap("update workflow", "workflow", wf.ID().String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("workflow", wf.ID().String())
	}
	return nil
}

// Delete removes the workflow; its steps go with it through the foreign key.
func (r *GormWorkflowRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&WorkflowDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Wrap("delete workflow", "workflow", id.String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("workflow", id.String())
	}
	return nil
}

func (r *GormWorkflowRepository) Get(ctx context.Context, id kernel.UUID) (*workflow.Workflow, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkflowDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Wrap("get workflow", "workflow", id.String(), err)
	}
	return workflowToDomain(dto)
}

func (r *GormWorkflowRepository) List(ctx context.Context, filter ports.WorkflowFilter) ([]*workflow.Workflow, error) {
	q := r.db.WithContext(ctx).Order("name, id")
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}
	if filter.Default != nil {
		q = q.Where("is_default = ?", *filter.Default)
	}

	var dtos []WorkflowDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, pgerr.Store("list workflows", err)
	}

	workflows := make([]*workflow.Workflow, 0, len(dtos))
	for _, dto := range dtos {
		wf, err := workflowToDomain(dto)
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, wf)
	}
	return workflows, nil
}

func (r *GormWorkflowRepository) GetDefault(ctx context.Context) (*workflow.Workflow, error) {
	var dto WorkflowDTO
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&dto).Error; err != nil {
		return nil, pgerr.Wrap("get default workflow", "workflow", "default", err)
	}
	return workflowToDomain(dto)
}

func (r *GormWorkflowRepository) ClearDefaultExcept(ctx context.Context, keep kernel.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&WorkflowDTO{}).
		Where("is_default = ? AND id <> ?", true, keep.Bytes()).
		Updates(map[string]any{"is_default": false, "updated_at": time.Now().UTC()}).Error
	return pgerr.Store("clear default workflow", err)
}
