package workflow

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/core/domain/model/condition"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// ErrStepIsNotConstructed is returned when using an improperly initialized Step.
var ErrStepIsNotConstructed = errors.New("Step must be created via NewStep constructor")

// StepDefinition is the editable part of a step.
type StepDefinition struct {
	StepOrder        int
	StatusName       string
	Conditions       []condition.Condition
	Actions          []Action
	RequiresApproval bool
	ApprovalRole     string
	Notifications    []Notification
}

// Step is one stage of a workflow. Entering it means writing StatusName to the order.
//
// Business rules:
//   - StepOrder is positive; uniqueness within the workflow is checked by the store
//   - StatusName is required
//   - Conditions, actions and notifications must each be well formed
type Step struct {
	id               kernel.UUID
	workflowID       kernel.UUID
	stepOrder        int
	statusName       string
	conditions       []condition.Condition
	actions          []Action
	requiresApproval bool
	approvalRole     string
	notifications    []Notification

	guard guard.ConstructorGuard
}

// NewStep builds a step of the given workflow. It is also used to restore steps
// from storage.
func NewStep(id, workflowID kernel.UUID, def StepDefinition) (*Step, error) {
	s := &Step{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		workflowID.Validate(),
		s.apply(def),
	); err != nil {
		return nil, err
	}
	s.id = id
	s.workflowID = workflowID

	return s, nil
}

// Update replaces the definition. On error the step is left unchanged.
func (s *Step) Update(def StepDefinition) error {
	next := *s
	if err := next.apply(def); err != nil {
		return err
	}
	*s = next
	return nil
}

func (s *Step) Validate() error {
	if s == nil {
		return ErrStepIsNotConstructed
	}
	return s.guard.Validate(ErrStepIsNotConstructed)
}

func (s *Step) ID() kernel.UUID         { return s.id }
func (s *Step) WorkflowID() kernel.UUID { return s.workflowID }
func (s *Step) StepOrder() int          { return s.stepOrder }
func (s *Step) StatusName() string      { return s.statusName }
func (s *Step) RequiresApproval() bool  { return s.requiresApproval }
func (s *Step) ApprovalRole() string    { return s.approvalRole }

func (s *Step) Conditions() []condition.Condition {
	out := make([]condition.Condition, len(s.conditions))
	copy(out, s.conditions)
	return out
}

func (s *Step) Actions() []Action {
	out := make([]Action, len(s.actions))
	copy(out, s.actions)
	return out
}

func (s *Step) Notifications() []Notification {
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Definition returns the editable part of the step.
func (s *Step) Definition() StepDefinition {
	return StepDefinition{
		StepOrder:        s.stepOrder,
		StatusName:       s.statusName,
		Conditions:       s.Conditions(),
		Actions:          s.Actions(),
		RequiresApproval: s.requiresApproval,
		ApprovalRole:     s.approvalRole,
		Notifications:    s.Notifications(),
	}
}

func (s *Step) apply(def StepDefinition) error {
	var problems []error

	if def.StepOrder <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"step_order", fmt.Errorf("%d is not greater than 0", def.StepOrder)))
	}
	status := strings.TrimSpace(def.StatusName)
	if status == "" {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"status_name", errors.New("status name must not be empty")))
	}
	for i, c := range def.Conditions {
		if err := c.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("condition", errors.Join(err, errIndex(i))))
		}
	}
	for i, a := range def.Actions {
		if err := a.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("action", errors.Join(err, errIndex(i))))
		}
	}
	for i, n := range def.Notifications {
		if err := n.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("notification", errors.Join(err, errIndex(i))))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	s.stepOrder = def.StepOrder
	s.statusName = status
	s.conditions = append([]condition.Condition(nil), def.Conditions...)
	s.actions = append([]Action(nil), def.Actions...)
	s.requiresApproval = def.RequiresApproval
	s.approvalRole = strings.TrimSpace(def.ApprovalRole)
	s.notifications = append([]Notification(nil), def.Notifications...)
	return nil
}

func errIndex(i int) error {
	return fmt.Errorf("at index %d", i)
}
