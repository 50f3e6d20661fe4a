// Package auditrepo is the default audit sink: audit events land in the audit_log
// table for downstream consumers.
package auditrepo

import (
	"context"
	"time"

	"orderflow/internal/adapters/out/postgres/pgerr"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryDTO is a row of the audit_log table.
type EntryDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Event     string         `gorm:"type:varchar(128);not null;index"`
	Payload   map[string]any `gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time      `gorm:"not null"`
}

func (EntryDTO) TableName() string {
	return "audit_log"
}

// GormAuditSink implements ports.AuditSink using GORM.
type GormAuditSink struct {
	db *gorm.DB
}

func NewGormAuditSink(db *gorm.DB) *GormAuditSink {
	return &GormAuditSink{db: db}
}

func (s *GormAuditSink) Append(ctx context.Context, event string, payload map[string]any) error {
	dto := EntryDTO{
		ID:        kernel.NewUUID().Bytes(),
		Event:     event,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	return pgerr.Store("append audit event", s.db.WithContext(ctx).Create(&dto).Error)
}

// List returns the events recorded under name, oldest first.
func (s *GormAuditSink) List(ctx context.Context, event string) ([]EntryDTO, error) {
	var dtos []EntryDTO
	if err := s.db.WithContext(ctx).
		Where("event = ?", event).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Store("list audit events", err)
	}
	return dtos, nil
}
