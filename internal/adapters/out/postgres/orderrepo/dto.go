// Package orderrepo reads and writes the commerce orders the workflow engine
// governs. The orders table belongs to the commerce store; this adapter only
// touches the fields the engine is allowed to change.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is a row of the orders table.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderStatus    string    `gorm:"type:varchar(64);not null;index"`
	PaymentStatus  string    `gorm:"type:varchar(64)"`
	ShippingStatus string    `gorm:"type:varchar(64)"`
	TotalAmount    float64   `gorm:"type:numeric(12,2);not null"`
	CustomerEmail  string    `gorm:"type:text"`
	Priority       int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`

	CustomFields []CustomFieldDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// CustomFieldDTO is a row of the order_custom_fields table, one per order and key.
type CustomFieldDTO struct {
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	FieldKey string    `gorm:"primaryKey"`
	Value    string    `gorm:"type:text"`
}

func (CustomFieldDTO) TableName() string {
	return "order_custom_fields"
}

// toDomain converts a row into the read-only snapshot used by the engine.
func toDomain(dto OrderDTO) (*order.Snapshot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.NewSnapshot(order.SnapshotParams{
		ID:             id,
		OrderStatus:    dto.OrderStatus,
		PaymentStatus:  dto.PaymentStatus,
		ShippingStatus: dto.ShippingStatus,
		TotalAmount:    dto.TotalAmount,
		CustomerEmail:  dto.CustomerEmail,
		CreatedAt:      dto.CreatedAt.UTC(),
	})
}
