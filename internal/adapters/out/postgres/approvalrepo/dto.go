// Package approvalrepo persists approval requests.
package approvalrepo

import (
	"time"

	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ApprovalDTO is a row of the approvals table. Status holds the textual form so
// other tools can query it directly.
type ApprovalDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index:idx_approvals_order_step"`
	StepID       uuid.UUID `gorm:"column:workflow_step_id;type:uuid;not null;index:idx_approvals_order_step"`
	ApprovalType string    `gorm:"not null"`
	ApproverID   *string   `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(16);not null;index"`
	Comments     string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (ApprovalDTO) TableName() string {
	return "approvals"
}

func fromDomain(a *approval.Approval) ApprovalDTO {
	var approverID *string
	if id := a.ApproverID(); id != "" {
		approverID = &id
	}

	return ApprovalDTO{
		ID:           a.ID().Bytes(),
		OrderID:      a.OrderID().Bytes(),
		StepID:       a.StepID().Bytes(),
		ApprovalType: a.ApprovalType(),
		ApproverID:   approverID,
		Status:       a.Status().String(),
		Comments:     a.Comments(),
		CreatedAt:    a.CreatedAt(),
		UpdatedAt:    a.UpdatedAt(),
	}
}

func toDomain(dto ApprovalDTO) (*approval.Approval, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	stepID, err := kernel.UUIDFromBytes(dto.StepID[:])
	if err != nil {
		return nil, err
	}
	status, err := approval.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var approverID string
	if dto.ApproverID != nil {
		approverID = *dto.ApproverID
	}

	return approval.RestoreApproval(approval.RestoreParams{
		ID:           id,
		OrderID:      orderID,
		StepID:       stepID,
		ApprovalType: dto.ApprovalType,
		ApproverID:   approverID,
		Status:       status,
		Comments:     dto.Comments,
		CreatedAt:    dto.CreatedAt.UTC(),
		UpdatedAt:    dto.UpdatedAt.UTC(),
	})
}
