package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrListRulesQueryIsNotConstructed = errors.New("ListRulesQuery must be created via NewListRulesQuery constructor")
	ErrGetRuleQueryIsNotConstructed   = errors.New("GetRuleQuery must be created via NewGetRuleQuery constructor")
)

// ListRulesQuery lists rules in execution order. activeOnly drops inactive rules.
type ListRulesQuery struct {
	activeOnly bool
	guard      guard.ConstructorGuard
}

func NewListRulesQuery(activeOnly bool) ListRulesQuery {
	return ListRulesQuery{activeOnly: activeOnly, guard: guard.NewConstructorGuard()}
}

func (q ListRulesQuery) Validate() error {
	return q.guard.Validate(ErrListRulesQueryIsNotConstructed)
}

func (q ListRulesQuery) ActiveOnly() bool { return q.activeOnly }

type GetRuleQuery struct {
	ruleID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetRuleQuery(ruleID kernel.UUID) (GetRuleQuery, error) {
	if err := ruleID.Validate(); err != nil {
		return GetRuleQuery{}, err
	}
	return GetRuleQuery{ruleID: ruleID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRuleQuery) Validate() error {
	return q.guard.Validate(ErrGetRuleQueryIsNotConstructed)
}

func (q GetRuleQuery) RuleID() kernel.UUID { return q.ruleID }
