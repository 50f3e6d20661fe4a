// Package automationrepo persists automation rules and the automation log.
package automationrepo

import (
	"time"

	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"

	"github.com/google/uuid"
)

// RuleDTO is a row of the automation_rules table.
type RuleDTO struct {
	ID                uuid.UUID                     `gorm:"type:uuid;primaryKey"`
	Name              string                        `gorm:"not null"`
	Description       string                        `gorm:"type:text"`
	TriggerConditions []automation.TriggerCondition `gorm:"type:jsonb;serializer:json"`
	Actions           []workflow.Action             `gorm:"type:jsonb;serializer:json"`
	Priority          int                           `gorm:"not null;index:idx_automation_rules_priority"`
	IsActive          bool                          `gorm:"not null"`
	CreatedAt         time.Time                     `gorm:"not null"`
	UpdatedAt         time.Time                     `gorm:"not null"`
}

func (RuleDTO) TableName() string {
	return "automation_rules"
}

// LogDTO is a row of the append-only automation_log table.
type LogDTO struct {
	ID              uuid.UUID                  `gorm:"type:uuid;primaryKey"`
	RuleID          uuid.UUID                  `gorm:"type:uuid;not null;index"`
	OrderID         uuid.UUID                  `gorm:"type:uuid;not null;index"`
	TriggerEvent    string                     `gorm:"not null"`
	ActionsExecuted []automation.ActionOutcome `gorm:"type:jsonb;serializer:json"`
	ExecutionResult string                     `gorm:"type:varchar(16);not null"`
	ErrorMessage    string                     `gorm:"type:text"`
	ExecutedAt      time.Time                  `gorm:"not null;index"`
}

func (LogDTO) TableName() string {
	return "automation_log"
}

func ruleFromDomain(r *automation.Rule) RuleDTO {
	return RuleDTO{
		ID:                r.ID().Bytes(),
		Name:              r.Name(),
		Description:       r.Description(),
		TriggerConditions: r.TriggerConditions(),
		Actions:           r.Actions(),
		Priority:          r.Priority(),
		IsActive:          r.IsActive(),
	}
}

func ruleToDomain(dto RuleDTO) (*automation.Rule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return automation.NewRule(automation.RuleParams{
		ID:                id,
		Name:              dto.Name,
		Description:       dto.Description,
		TriggerConditions: dto.TriggerConditions,
		Actions:           dto.Actions,
		Priority:          dto.Priority,
		IsActive:          dto.IsActive,
	})
}

func logFromDomain(l automation.Log) LogDTO {
	return LogDTO{
		ID:              l.ID.Bytes(),
		RuleID:          l.RuleID.Bytes(),
		OrderID:         l.OrderID.Bytes(),
		TriggerEvent:    l.TriggerEvent,
		ActionsExecuted: l.ActionsExecuted,
		ExecutionResult: string(l.Result),
		ErrorMessage:    l.ErrorMessage,
		ExecutedAt:      l.ExecutedAt,
	}
}

func logToDomain(dto LogDTO) (automation.Log, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return automation.Log{}, err
	}
	ruleID, err := kernel.UUIDFromBytes(dto.RuleID[:])
	if err != nil {
		return automation.Log{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return automation.Log{}, err
	}

	return automation.Log{
		ID:              id,
		RuleID:          ruleID,
		OrderID:         orderID,
		TriggerEvent:    dto.TriggerEvent,
		ActionsExecuted: dto.ActionsExecuted,
		Result:          automation.ExecutionResult(dto.ExecutionResult),
		ErrorMessage:    dto.ErrorMessage,
		ExecutedAt:      dto.ExecutedAt.UTC(),
	}, nil
}
