// Package tagrepo persists tags and their association with orders.
package tagrepo

import (
	"time"

	"github.com/google/uuid"
)

// TagDTO is a row of the tags table.
type TagDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`

	Orders []OrderTagDTO `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (TagDTO) TableName() string {
	return "tags"
}

// OrderTagDTO is a row of the order_tags association table.
type OrderTagDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

func (OrderTagDTO) TableName() string {
	return "order_tags"
}
