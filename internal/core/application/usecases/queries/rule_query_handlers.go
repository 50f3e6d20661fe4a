package queries

import (
	"context"

	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ruleColumns = `
	id,
	name,
	description,
	trigger_conditions,
	actions,
	priority,
	is_active,
	created_at,
	updated_at`

type ListRulesQueryHandler struct {
	db *gorm.DB
}

func NewListRulesQueryHandler(db *gorm.DB) ListRulesQueryHandler {
	return ListRulesQueryHandler{db: db}
}

// Handle returns rules ordered by ascending priority, then id.
func (h ListRulesQueryHandler) Handle(ctx context.Context, query ListRulesQuery) ([]RuleView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return selectRules(ctx, h.db, `
		SELECT`+ruleColumns+`
		FROM automation_rules
		WHERE is_active OR NOT ?
		ORDER BY priority, id
	`, query.ActiveOnly())
}

type GetRuleQueryHandler struct {
	db *gorm.DB
}

func NewGetRuleQueryHandler(db *gorm.DB) GetRuleQueryHandler {
	return GetRuleQueryHandler{db: db}
}

func (h GetRuleQueryHandler) Handle(ctx context.Context, query GetRuleQuery) (RuleView, error) {
	if err := query.Validate(); err != nil {
		return RuleView{}, err
	}

	rules, err := selectRules(ctx, h.db, `SELECT`+ruleColumns+` FROM automation_rules WHERE id = ?`, query.RuleID().Bytes())
	if err != nil {
		return RuleView{}, err
	}
	if len(rules) == 0 {
		return RuleView{}, errs.NewObjectNotFoundError("rule", query.RuleID().String())
	}
	return rules[0], nil
}

func selectRules(ctx context.Context, db *gorm.DB, stmt string, args ...any) ([]RuleView, error) {
	rows, err := db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, storeError("read rules", err)
	}
	defer rows.Close()

	rules := make([]RuleView, 0)
	for rows.Next() {
		var (
			r                 RuleView
			id                uuid.UUID
			triggers, actions []byte
		)
		if err = rows.Scan(
			&id,
			&r.Name,
			&r.Description,
			&triggers,
			&actions,
			&r.Priority,
			&r.IsActive,
			&r.CreatedAt,
			&r.UpdatedAt,
		); err != nil {
			return nil, storeError("read rules", err)
		}

		if r.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if err = decodeJSON("trigger_conditions", triggers, &r.TriggerConditions); err != nil {
			return nil, err
		}
		if err = decodeJSON("actions", actions, &r.Actions); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	if err = rows.Err(); err != nil {
		return nil, storeError("read rules", err)
	}
	return rules, nil
}
