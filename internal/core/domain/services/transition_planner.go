package services

import (
	"sort"

	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/errs"
)

// TransitionPlanner is the state machine over a workflow's steps. The current state
// of an order is never stored: it is the step whose status name matches the order's
// live status.
//
// Business rules:
//   - Steps only move forward: a target must have a greater step order than the current step
//   - A target step is reachable only when its conditions hold for the order
//   - A step requiring approval cannot be skipped: later steps are out of reach until
//     the order has entered it
//   - An order whose status matches no step has no current step, every step with passing
//     conditions is then reachable
type TransitionPlanner struct {
	evaluator ConditionEvaluator
}

func NewTransitionPlanner(evaluator ConditionEvaluator) TransitionPlanner {
	return TransitionPlanner{evaluator: evaluator}
}

// Plan is the outcome of a successful planning: where the order is and where it goes.
type Plan struct {
	Current *workflow.Step
	Target  *workflow.Step
}

// CurrentStep returns the step bound to status, or nil. When several steps share the
// status the one with the lowest step order wins.
func (p TransitionPlanner) CurrentStep(steps []*workflow.Step, status string) *workflow.Step {
	var current *workflow.Step
	for _, s := range steps {
		if s.StatusName() != status {
			continue
		}
		if current == nil || s.StepOrder() < current.StepOrder() {
			current = s
		}
	}
	return current
}

// AvailableTransitions returns the steps the order may move to, in step order.
func (p TransitionPlanner) AvailableTransitions(steps []*workflow.Step, facts OrderFacts) []*workflow.Step {
	status := ""
	if facts.Snapshot != nil {
		status = facts.Snapshot.OrderStatus()
	}
	current := p.CurrentStep(steps, status)

	ordered := make([]*workflow.Step, len(steps))
	copy(ordered, steps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StepOrder() < ordered[j].StepOrder()
	})

	available := make([]*workflow.Step, 0, len(ordered))
	for _, s := range ordered {
		if current != nil && s.StepOrder() <= current.StepOrder() {
			continue
		}
		if p.evaluator.EvaluateConditionSet(facts, s.Conditions()) {
			available = append(available, s)
		}
		if s.RequiresApproval() {
			break
		}
	}
	return available
}

// PlanTransition finds the available step bound to newStatus. It fails with
// InvalidTransitionError when there is none.
func (p TransitionPlanner) PlanTransition(steps []*workflow.Step, facts OrderFacts, newStatus string) (Plan, error) {
	orderID, status := "", ""
	if facts.Snapshot != nil {
		orderID = facts.Snapshot.ID().String()
		status = facts.Snapshot.OrderStatus()
	}

	for _, s := range p.AvailableTransitions(steps, facts) {
		if s.StatusName() == newStatus {
			return Plan{
				Current: p.CurrentStep(steps, status),
				Target:  s,
			}, nil
		}
	}
	return Plan{}, errs.NewInvalidTransitionError(orderID, status, newStatus)
}
