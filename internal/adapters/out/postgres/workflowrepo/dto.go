// Package workflowrepo persists workflows, their steps and the assignment of
// orders to workflows.
package workflowrepo

import (
	"time"

	"orderflow/internal/core/domain/model/condition"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"

	"github.com/google/uuid"
)

// WorkflowDTO is a row of the workflows table. Steps and Assignments are declared
// for their foreign keys only; the repository never preloads them.
type WorkflowDTO struct {
	ID                uuid.UUID             `gorm:"type:uuid;primaryKey"`
	Name              string                `gorm:"not null"`
	Description       string                `gorm:"type:text"`
	IsDefault         bool                  `gorm:"not null"`
	IsActive          bool                  `gorm:"not null;index"`
	TriggerConditions []condition.Condition `gorm:"type:jsonb;serializer:json"`
	CreatedAt         time.Time             `gorm:"not null"`
	UpdatedAt         time.Time             `gorm:"not null"`

	Steps       []StepDTO       `gorm:"foreignKey:WorkflowID;constraint:OnDelete:CASCADE"`
	Assignments []AssignmentDTO `gorm:"foreignKey:WorkflowID;constraint:OnDelete:CASCADE"`
}

func (WorkflowDTO) TableName() string {
	return "workflows"
}

// StepDTO is a row of the workflow_steps table.
type StepDTO struct {
	ID               uuid.UUID               `gorm:"type:uuid;primaryKey"`
	WorkflowID       uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_workflow_steps_order"`
	StepOrder        int                     `gorm:"not null;uniqueIndex:idx_workflow_steps_order"`
	StatusName       string                  `gorm:"not null"`
	Conditions       []condition.Condition   `gorm:"type:jsonb;serializer:json"`
	Actions          []workflow.Action       `gorm:"type:jsonb;serializer:json"`
	RequiresApproval bool                    `gorm:"not null"`
	ApprovalRole     string                  `gorm:"type:text"`
	Notifications    []workflow.Notification `gorm:"type:jsonb;serializer:json"`
}

func (StepDTO) TableName() string {
	return "workflow_steps"
}

// AssignmentDTO is a row of the order_workflows table, one per order.
type AssignmentDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkflowID uuid.UUID `gorm:"type:uuid;not null;index"`
	IsActive   bool      `gorm:"not null"`
	AssignedAt time.Time `gorm:"not null"`
}

func (AssignmentDTO) TableName() string {
	return "order_workflows"
}

func workflowFromDomain(wf *workflow.Workflow) WorkflowDTO {
	return WorkflowDTO{
		ID:                wf.ID().Bytes(),
		Name:              wf.Name(),
		Description:       wf.Description(),
		IsDefault:         wf.IsDefault(),
		IsActive:          wf.IsActive(),
		TriggerConditions: wf.TriggerConditions(),
	}
}

func workflowToDomain(dto WorkflowDTO) (*workflow.Workflow, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return workflow.RestoreWorkflow(id, dto.Name, dto.Description, dto.IsDefault, dto.IsActive, dto.TriggerConditions)
}

func stepFromDomain(s *workflow.Step) StepDTO {
	return StepDTO{
		ID:               s.ID().Bytes(),
		WorkflowID:       s.WorkflowID().Bytes(),
		StepOrder:        s.StepOrder(),
		StatusName:       s.StatusName(),
		Conditions:       s.Conditions(),
		Actions:          s.Actions(),
		RequiresApproval: s.RequiresApproval(),
		ApprovalRole:     s.ApprovalRole(),
		Notifications:    s.Notifications(),
	}
}

func stepToDomain(dto StepDTO) (*workflow.Step, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	workflowID, err := kernel.UUIDFromBytes(dto.WorkflowID[:])
	if err != nil {
		return nil, err
	}
	return workflow.NewStep(id, workflowID, workflow.StepDefinition{
		StepOrder:        dto.StepOrder,
		StatusName:       dto.StatusName,
		Conditions:       dto.Conditions,
		Actions:          dto.Actions,
		RequiresApproval: dto.RequiresApproval,
		ApprovalRole:     dto.ApprovalRole,
		Notifications:    dto.Notifications,
	})
}

func assignmentFromDomain(a workflow.Assignment) AssignmentDTO {
	return AssignmentDTO{
		OrderID:    a.OrderID.Bytes(),
		WorkflowID: a.WorkflowID.Bytes(),
		IsActive:   a.IsActive,
		AssignedAt: a.AssignedAt,
	}
}

func assignmentToDomain(dto AssignmentDTO) (workflow.Assignment, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return workflow.Assignment{}, err
	}
	workflowID, err := kernel.UUIDFromBytes(dto.WorkflowID[:])
	if err != nil {
		return workflow.Assignment{}, err
	}
	return workflow.Assignment{
		OrderID:    orderID,
		WorkflowID: workflowID,
		IsActive:   dto.IsActive,
		AssignedAt: dto.AssignedAt.UTC(),
	}, nil
}
