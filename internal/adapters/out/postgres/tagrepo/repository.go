package tagrepo

import (
	"context"
	"strings"

	"orderflow/internal/adapters/out/postgres/pgerr"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository implements ports.TagRepository using GORM. Both writes are
// upserts so concurrent add_tag actions converge on one tag and one association.
type GormTagRepository struct {
	db *gorm.DB
}

func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

func (r *GormTagRepository) GetOrCreate(ctx context.Context, name string) (kernel.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("tag name")
	}

	candidate := TagDTO{ID: kernel.NewUUID().Bytes(), Name: name}
	if err := r.db.WithContext(ctx).
		Omit("Orders").
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&candidate).Error; err != nil {
		return kernel.UUID{}, pgerr.Store("create tag", err)
	}

	var stored TagDTO
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&stored).Error; err != nil {
		return kernel.UUID{}, pgerr.Wrap("get tag", "tag", name, err)
	}
	return kernel.UUIDFromBytes(stored.ID[:])
}

func (r *GormTagRepository) Attach(ctx context.Context, orderID, tagID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := tagID.Validate(); err != nil {
		return err
	}

	dto := OrderTagDTO{OrderID: orderID.Bytes(), TagID: tagID.Bytes()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
	return pgerr.Wrap("attach tag", "tag", tagID.String(), err)
}

// Names returns the tag names of the order in lexical order.
func (r *GormTagRepository) Names(ctx context.Context, orderID kernel.UUID) ([]string, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var names []string
	if err := r.db.WithContext(ctx).
		Model(&TagDTO{}).
		Joins("JOIN order_tags ON order_tags.tag_id = tags.id").
		Where("order_tags.order_id = ?", orderID.Bytes()).
		Order("tags.name").
		Pluck("tags.name", &names).Error; err != nil {
		return nil, pgerr.Store("list order tags", err)
	}
	return names, nil
}
