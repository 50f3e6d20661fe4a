// Package automation models event-driven rules: which trigger events a rule
// listens to, the conditions it checks, the actions it runs and the log left
// behind by each execution.
package automation

import (
	"errors"
	"sort"
	"strings"

	"orderflow/internal/core/domain/model/condition"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// Well-known trigger events. Rules may listen to any event name.
const (
	EventOrderCreated  = "order_created"
	EventOrderPaid     = "order_paid"
	EventStatusChanged = "status_changed"
	EventScheduled     = "scheduled"
)

var (
	ErrRuleNameIsRequired   = errs.NewValueIsRequiredError("rule name")
	ErrRuleIsNotConstructed = errors.New("Rule must be created via NewRule constructor")
)

// TriggerCondition subscribes a rule to Event and, when Type is set, adds a guard
// to the rule's condition set. On the wire it is one flat object:
// {"event": "order_created", "type": "total_amount", "operator": ">=", "value": 100}.
type TriggerCondition struct {
	Event string `json:"event"`
	condition.Condition
}

func (t TriggerCondition) Validate() error {
	if strings.TrimSpace(t.Event) == "" {
		return errs.NewValueIsRequiredError("trigger event")
	}
	if t.Type != "" && t.Operator == "" {
		return errs.NewValueIsRequiredError("trigger condition operator")
	}
	return nil
}

// RuleParams carries everything needed to build or restore a rule.
type RuleParams struct {
	ID                kernel.UUID
	Name              string
	Description       string
	TriggerConditions []TriggerCondition
	Actions           []workflow.Action
	Priority          int
	IsActive          bool
}

// Rule is an automation rule. Rules fire in ascending Priority order; equal
// priorities fall back to id order.
type Rule struct {
	id                kernel.UUID
	name              string
	description       string
	triggerConditions []TriggerCondition
	actions           []workflow.Action
	priority          int
	isActive          bool

	guard guard.ConstructorGuard
}

func NewRule(p RuleParams) (*Rule, error) {
	r := &Rule{guard: guard.NewConstructorGuard()}
	if err := errors.Join(p.ID.Validate(), r.apply(p)); err != nil {
		return nil, err
	}
	r.id = p.ID
	return r, nil
}

// Update replaces every field except the id. On error the rule is left unchanged.
func (r *Rule) Update(p RuleParams) error {
	next := *r
	if err := next.apply(p); err != nil {
		return err
	}
	*r = next
	return nil
}

func (r *Rule) Validate() error {
	if r == nil {
		return ErrRuleIsNotConstructed
	}
	return r.guard.Validate(ErrRuleIsNotConstructed)
}

func (r *Rule) ID() kernel.UUID     { return r.id }
func (r *Rule) Name() string        { return r.name }
func (r *Rule) Description() string { return r.description }
func (r *Rule) Priority() int       { return r.priority }
func (r *Rule) IsActive() bool      { return r.isActive }

func (r *Rule) TriggerConditions() []TriggerCondition {
	out := make([]TriggerCondition, len(r.triggerConditions))
	copy(out, r.triggerConditions)
	return out
}

func (r *Rule) Actions() []workflow.Action {
	out := make([]workflow.Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// ListensTo reports whether any trigger condition names event.
func (r *Rule) ListensTo(event string) bool {
	for _, tc := range r.triggerConditions {
		if tc.Event == event {
			return true
		}
	}
	return false
}

// Conditions returns the full condition set of the rule, across every event it
// listens to.
func (r *Rule) Conditions() []condition.Condition {
	out := make([]condition.Condition, 0, len(r.triggerConditions))
	for _, tc := range r.triggerConditions {
		out = append(out, tc.Condition)
	}
	return out
}

func (r *Rule) apply(p RuleParams) error {
	var problems []error

	name := strings.TrimSpace(p.Name)
	if name == "" {
		problems = append(problems, ErrRuleNameIsRequired)
	}
	for _, tc := range p.TriggerConditions {
		if err := tc.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	for _, a := range p.Actions {
		if err := a.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	r.name = name
	r.description = p.Description
	r.triggerConditions = append([]TriggerCondition(nil), p.TriggerConditions...)
	r.actions = append([]workflow.Action(nil), p.Actions...)
	r.priority = p.Priority
	r.isActive = p.IsActive
	return nil
}

// SortByPriority orders rules for execution: ascending priority, then ascending id.
func SortByPriority(rules []*Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority != rules[j].priority {
			return rules[i].priority < rules[j].priority
		}
		return rules[i].id.Less(rules[j].id)
	})
}
