// Package fulfillmentrepo persists fulfillments created by automation actions.
package fulfillmentrepo

import (
	"context"
	"time"

	"orderflow/internal/adapters/out/postgres/pgerr"
	"orderflow/internal/core/domain/model/fulfillment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FulfillmentDTO is a row of the fulfillments table.
type FulfillmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Carrier        string    `gorm:"type:text"`
	TrackingNumber string    `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(32);not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (FulfillmentDTO) TableName() string {
	return "fulfillments"
}

// GormFulfillmentRepository implements ports.FulfillmentRepository using GORM.
type GormFulfillmentRepository struct {
	db *gorm.DB
}

func NewGormFulfillmentRepository(db *gorm.DB) *GormFulfillmentRepository {
	return &GormFulfillmentRepository{db: db}
}

func (r *GormFulfillmentRepository) Add(ctx context.Context, f fulfillment.Fulfillment) error {
	if err := f.OrderID.Validate(); err != nil {
		return err
	}

	dto := FulfillmentDTO{
		ID:             f.ID.Bytes(),
		OrderID:        f.OrderID.Bytes(),
		Carrier:        f.Carrier,
		TrackingNumber: f.TrackingNumber,
		Status:         f.Status,
		CreatedAt:      f.CreatedAt,
	}
	return pgerr.Store("add fulfillment", r.db.WithContext(ctx).Create(&dto).Error)
}
