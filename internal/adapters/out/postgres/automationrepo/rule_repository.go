package automationrepo

import (
	"context"
	"time"

	"orderflow/internal/adapters/out/postgres/pgerr"
	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRuleRepository implements ports.RuleRepository using GORM.
type GormRuleRepository struct {
	db *gorm.DB
}

func NewGormRuleRepository(db *gorm.DB) *GormRuleRepository {
	return &GormRuleRepository{db: db}
}

func (r *GormRuleRepository) Add(ctx context.Context, rule *automation.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	dto := ruleFromDomain(rule)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Wrap("add rule", "rule", rule.ID().String(), err)
	}
	return nil
}

func (r *GormRuleRepository) Update(ctx context.Context, rule *automation.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	dto := ruleFromDomain(rule)
	dto.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&RuleDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "description", "trigger_conditions", "actions", "priority", "is_active", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Wrap("update rule", "rule", rule.ID().String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rule", rule.ID().String())
	}
	return nil
}

func (r *GormRuleRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&RuleDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Wrap("delete rule", "rule", id.String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rule", id.String())
	}
	return nil
}

func (r *GormRuleRepository) Get(ctx context.Context, id kernel.UUID) (*automation.Rule, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RuleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Wrap("get rule", "rule", id.String(), err)
	}
	return ruleToDomain(dto)
}

// List returns rules in execution order: ascending priority, then id.
func (r *GormRuleRepository) List(ctx context.Context, activeOnly bool) ([]*automation.Rule, error) {
	q := r.db.WithContext(ctx).Order("priority, id")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var dtos []RuleDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, pgerr.Store("list rules", err)
	}

	rules := make([]*automation.Rule, 0, len(dtos))
	for _, dto := range dtos {
		rule, err := ruleToDomain(dto)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
