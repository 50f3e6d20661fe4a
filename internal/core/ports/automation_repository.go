package ports

import (
	"context"

	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/kernel"
)

// RuleRepository persists automation rules.
type RuleRepository interface {
	Add(ctx context.Context, rule *automation.Rule) error
	Update(ctx context.Context, rule *automation.Rule) error
	Delete(ctx context.Context, id kernel.UUID) error
	Get(ctx context.Context, id kernel.UUID) (*automation.Rule, error)

	// List returns rules ordered by priority then id. activeOnly drops inactive rules.
	List(ctx context.Context, activeOnly bool) ([]*automation.Rule, error)
}

// AutomationLogFilter narrows the log listing. Nil fields do not filter.
type AutomationLogFilter struct {
	OrderID *kernel.UUID
	RuleID  *kernel.UUID
}

// AutomationLogRepository is the append-only automation log.
type AutomationLogRepository interface {
	Append(ctx context.Context, log automation.Log) error
	List(ctx context.Context, filter AutomationLogFilter) ([]automation.Log, error)
}
