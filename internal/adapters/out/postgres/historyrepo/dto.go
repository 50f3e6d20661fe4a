// Package historyrepo persists the append-only order status history.
package historyrepo

import (
	"time"

	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO is a row of the status_history table. Nullable columns map to nil
// workflow and step ids and to an empty changed_by.
type EntryDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_status_history_order"`
	WorkflowID *uuid.UUID `gorm:"type:uuid"`
	StepID     *uuid.UUID `gorm:"column:workflow_step_id;type:uuid"`
	OldStatus  string     `gorm:"not null"`
	NewStatus  string     `gorm:"not null"`
	ChangedBy  *string    `gorm:"type:text"`
	ChangeType string     `gorm:"type:varchar(16);not null"`
	Notes      string     `gorm:"type:text"`
	CreatedAt  time.Time  `gorm:"not null;index:idx_status_history_order"`
}

func (EntryDTO) TableName() string {
	return "status_history"
}

func fromDomain(e history.Entry) EntryDTO {
	dto := EntryDTO{
		ID:         e.ID.Bytes(),
		OrderID:    e.OrderID.Bytes(),
		OldStatus:  e.OldStatus,
		NewStatus:  e.NewStatus,
		ChangeType: string(e.ChangeType),
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
	}
	if e.WorkflowID != nil {
		raw := e.WorkflowID.Bytes()
		dto.WorkflowID = &raw
	}
	if e.StepID != nil {
		raw := e.StepID.Bytes()
		dto.StepID = &raw
	}
	if e.ChangedBy != "" {
		changedBy := e.ChangedBy
		dto.ChangedBy = &changedBy
	}
	return dto
}

func toDomain(dto EntryDTO) (history.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return history.Entry{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return history.Entry{}, err
	}
	workflowID, err := optionalUUID(dto.WorkflowID)
	if err != nil {
		return history.Entry{}, err
	}
	stepID, err := optionalUUID(dto.StepID)
	if err != nil {
		return history.Entry{}, err
	}

	e := history.Entry{
		ID:         id,
		OrderID:    orderID,
		WorkflowID: workflowID,
		StepID:     stepID,
		OldStatus:  dto.OldStatus,
		NewStatus:  dto.NewStatus,
		ChangeType: history.ChangeType(dto.ChangeType),
		Notes:      dto.Notes,
		CreatedAt:  dto.CreatedAt.UTC(),
	}
	if dto.ChangedBy != nil {
		e.ChangedBy = *dto.ChangedBy
	}
	return e, nil
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
