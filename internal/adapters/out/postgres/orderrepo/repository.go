package orderrepo

import (
	"context"
	"time"

	"orderflow/internal/adapters/out/postgres/pgerr"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderStore implements ports.OrderStore using GORM. Every read goes to the
// database; nothing is cached between calls.
type GormOrderStore struct {
	db *gorm.DB
}

func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{db: db}
}

// Get retrieves a fresh snapshot of the order.
func (s *GormOrderStore) Get(ctx context.Context, id kernel.UUID) (*order.Snapshot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := s.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Wrap("get order", "order", id.String(), err)
	}
	return toDomain(dto)
}

func (s *GormOrderStore) UpdateStatus(ctx context.Context, id kernel.UUID, status string) error {
	return s.updateField(ctx, id, "order_status", status)
}

func (s *GormOrderStore) UpdatePriority(ctx context.Context, id kernel.UUID, priority int) error {
	return s.updateField(ctx, id, "priority", priority)
}

// SetCustomField creates or overwrites the value stored under key.
func (s *GormOrderStore) SetCustomField(ctx context.Context, id kernel.UUID, key, value string) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if key == "" {
		return errs.NewValueIsRequiredError("custom field key")
	}

	dto := CustomFieldDTO{OrderID: id.Bytes(), FieldKey: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "field_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&dto).Error
	return pgerr.Wrap("set custom field", "order", id.String(), err)
}

// ListOpenIDs returns the ids of orders whose status is not in excluded.
func (s *GormOrderStore) ListOpenIDs(ctx context.Context, excluded []string) ([]kernel.UUID, error) {
	// A nil array binds as NULL, which would exclude every row.
	statuses := append([]string{}, excluded...)

	var raw []uuid.UUID
	if err := s.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("NOT (order_status = ANY(?))", pq.Array(statuses)).
		Order("created_at, id").
		Pluck("id", &raw).Error; err != nil {
		return nil, pgerr.Store("list open orders", err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *GormOrderStore) updateField(ctx context.Context, id kernel.UUID, column string, value any) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{column: value, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return pgerr.Wrap("update order "+column, "order", id.String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}
