package services

import (
	"strings"

	"orderflow/internal/core/domain/model/condition"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderFacts is what conditions are evaluated against: a fresh order snapshot plus
// the names of the tags attached to the order. Tags may be nil when no condition
// needs them.
type OrderFacts struct {
	Snapshot *order.Snapshot
	Tags     []string
}

// NeedsTags reports whether any condition reads the order's tags.
func NeedsTags(conditions []condition.Condition) bool {
	for _, c := range conditions {
		if c.Type == condition.TypeHasTag {
			return true
		}
	}
	return false
}

// ConditionEvaluator compares order fields against condition operands.
//
// Comparisons are loose: numeric strings order numerically, in/not_in accept a list
// or a comma-separated string, contains/starts_with/ends_with work on the string
// form of the left operand. An unknown operator evaluates to false.
//
// The two set evaluations differ on purpose:
//   - EvaluateConditionSet (step reachability) is true for an empty set and
//     evaluates unknown condition types against a Null operand
//   - EvaluateTriggerConditions (automation rules) is false for an empty set and
//     skips unknown condition types
type ConditionEvaluator struct{}

func NewConditionEvaluator() ConditionEvaluator {
	return ConditionEvaluator{}
}

// Evaluate applies op to left and right.
func (e ConditionEvaluator) Evaluate(left kernel.Value, op condition.Operator, right kernel.Value) bool {
	switch op {
	case condition.Equal:
		return left.LooseEquals(right)
	case condition.NotEqual:
		return !left.LooseEquals(right)
	case condition.GreaterThan:
		return left.Compare(right) > 0
	case condition.LessThan:
		return left.Compare(right) < 0
	case condition.GreaterOrEqual:
		return left.Compare(right) >= 0
	case condition.LessOrEqual:
		return left.Compare(right) <= 0
	case condition.In:
		return memberOf(left, right)
	case condition.NotIn:
		return !memberOf(left, right)
	case condition.Contains:
		return contains(left, right)
	case condition.NotContains:
		return !contains(left, right)
	case condition.StartsWith:
		return strings.HasPrefix(left.String(), right.String())
	case condition.EndsWith:
		return strings.HasSuffix(left.String(), right.String())
	default:
		return false
	}
}

// EvaluateConditionSet is the conjunction used for step reachability. It stops at
// the first failing condition.
func (e ConditionEvaluator) EvaluateConditionSet(facts OrderFacts, conditions []condition.Condition) bool {
	for _, c := range conditions {
		if !e.evaluateOne(facts, c, false) {
			return false
		}
	}
	return true
}

// EvaluateTriggerConditions is the conjunction used for automation rules. Conditions
// of unknown type are skipped, so a set made only of them matches.
func (e ConditionEvaluator) EvaluateTriggerConditions(facts OrderFacts, conditions []condition.Condition) bool {
	if len(conditions) == 0 {
		return false
	}
	for _, c := range conditions {
		if !e.evaluateOne(facts, c, true) {
			return false
		}
	}
	return true
}

func (e ConditionEvaluator) evaluateOne(facts OrderFacts, c condition.Condition, skipUnknown bool) bool {
	if c.Type == condition.TypeHasTag {
		return hasTag(facts.Tags, c.Operator, c.Value)
	}

	var left kernel.Value
	known := false
	if facts.Snapshot != nil {
		left, known = facts.Snapshot.Field(c.Type)
	}
	if !known && skipUnknown {
		return true
	}
	return e.Evaluate(left, c.Operator, c.Value)
}

// hasTag checks the order's tags against one or more tag names. Positive operators
// require one of the names to be attached, negative ones require none.
func hasTag(tags []string, op condition.Operator, want kernel.Value) bool {
	present := false
	for _, w := range want.Items() {
		for _, tag := range tags {
			if strings.EqualFold(strings.TrimSpace(tag), strings.TrimSpace(w.String())) {
				present = true
				break
			}
		}
		if present {
			break
		}
	}

	switch op {
	case condition.Equal, condition.In, condition.Contains:
		return present
	case condition.NotEqual, condition.NotIn, condition.NotContains:
		return !present
	default:
		return false
	}
}

func memberOf(left, set kernel.Value) bool {
	candidates := []kernel.Value{left}
	if left.Kind() == kernel.KindList {
		candidates = left.Items()
	}
	for _, item := range set.Items() {
		for _, c := range candidates {
			if c.LooseEquals(item) {
				return true
			}
		}
	}
	return false
}

func contains(left, needle kernel.Value) bool {
	if left.Kind() == kernel.KindList {
		for _, item := range left.Items() {
			if item.LooseEquals(needle) {
				return true
			}
		}
		return false
	}
	return strings.Contains(left.String(), needle.String())
}
