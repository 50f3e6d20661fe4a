package approvalrepo

import (
	"context"

	"orderflow/internal/adapters/out/postgres/pgerr"
	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormApprovalRepository implements ports.ApprovalRepository using GORM.
type GormApprovalRepository struct {
	db *gorm.DB
}

func NewGormApprovalRepository(db *gorm.DB) *GormApprovalRepository {
	return &GormApprovalRepository{db: db}
}

func (r *GormApprovalRepository) Add(ctx context.Context, a *approval.Approval) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Wrap("add approval", "step", a.StepID().String(), err)
	}
	return nil
}

// Update writes a resolution. The row is only touched while still pending, so of
// two concurrent resolutions exactly one goes through.
func (r *GormApprovalRepository) Update(ctx context.Context, a *approval.Approval) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).
		Model(&ApprovalDTO{}).
		Where("id = ? AND status = ?", dto.ID, approval.Pending.String()).
		Select("approver_id", "status", "comments", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Wrap("update approval", "approval", a.ID().String(), result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	current, err := r.Get(ctx, a.ID())
	if err != nil {
		return err
	}
	return errs.NewNotPendingError(a.ID().String(), current.Status().String())
}

func (r *GormApprovalRepository) Get(ctx context.Context, id kernel.UUID) (*approval.Approval, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ApprovalDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Wrap("get approval", "approval", id.String(), err)
	}
	return toDomain(dto)
}

func (r *GormApprovalRepository) ListByOrderStep(ctx context.Context, orderID, stepID kernel.UUID) ([]*approval.Approval, error) {
	return r.List(ctx, ports.ApprovalFilter{OrderID: &orderID, StepID: &stepID})
}

// List returns the matching approvals, oldest first.
func (r *GormApprovalRepository) List(ctx context.Context, filter ports.ApprovalFilter) ([]*approval.Approval, error) {
	q := r.db.WithContext(ctx).Order("created_at, id")
	if filter.OrderID != nil {
		q = q.Where("order_id = ?", filter.OrderID.Bytes())
	}
	if filter.StepID != nil {
		q = q.Where("workflow_step_id = ?", filter.StepID.Bytes())
	}
	if filter.Status != nil {
		q = q.Where("status = ?", filter.Status.String())
	}

	var dtos []ApprovalDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, pgerr.Store("list approvals", err)
	}

	approvals := make([]*approval.Approval, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		approvals = append(approvals, a)
	}
	return approvals, nil
}
