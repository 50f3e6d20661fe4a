package workflow

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/condition"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when a workflow is created or renamed without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("workflow name")
	// ErrWorkflowIsNotConstructed is returned when using an improperly initialized Workflow.
	ErrWorkflowIsNotConstructed = errors.New("Workflow must be created via NewWorkflow constructor")
)

// Workflow is the aggregate describing how orders progress. Steps reference it by id
// and are stored separately; the workflow itself only carries its identity, flags and
// the conditions under which it applies to new orders.
//
// Business rules:
//   - The name is required
//   - A new workflow is active and not default
//   - The default flag is exclusive across workflows; the store enforces it on write
//   - A default workflow cannot be deleted
//
// Example usage:
//
//	wf, err := workflow.NewWorkflow(kernel.NewUUID(), "Standard", "pending → processing → shipped")
//	if err != nil {
//	    return err
//	}
//	wf.MarkDefault()
type Workflow struct {
	id                kernel.UUID
	name              string
	description       string
	isDefault         bool
	isActive          bool
	triggerConditions []condition.Condition

	guard guard.ConstructorGuard
}

// NewWorkflow creates an active, non-default workflow with no trigger conditions.
func NewWorkflow(id kernel.UUID, name, description string) (*Workflow, error) {
	w := &Workflow{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
	); err != nil {
		return nil, err
	}
	w.description = description

	return w, nil
}

// RestoreWorkflow reconstructs a Workflow from persistent storage.
func RestoreWorkflow(
	id kernel.UUID,
	name, description string,
	isDefault, isActive bool,
	triggerConditions []condition.Condition,
) (*Workflow, error) {
	w := &Workflow{
		isDefault:   isDefault,
		isActive:    isActive,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.SetTriggerConditions(triggerConditions),
	); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Workflow) Validate() error {
	if w == nil {
		return ErrWorkflowIsNotConstructed
	}
	return w.guard.Validate(ErrWorkflowIsNotConstructed)
}

func (w *Workflow) IsEqual(other *Workflow) bool {
	if other == nil {
		return false
	}
	return w.id.IsEqual(other.id)
}

func (w *Workflow) ID() kernel.UUID {
	return w.id
}

func (w *Workflow) Name() string {
	return w.name
}

func (w *Workflow) Description() string {
	return w.description
}

func (w *Workflow) IsDefault() bool {
	return w.isDefault
}

func (w *Workflow) IsActive() bool {
	return w.isActive
}

// TriggerConditions returns a copy of the conditions under which the workflow
// applies to new orders.
func (w *Workflow) TriggerConditions() []condition.Condition {
	out := make([]condition.Condition, len(w.triggerConditions))
	copy(out, w.triggerConditions)
	return out
}

// Rename replaces the name and description.
func (w *Workflow) Rename(name, description string) error {
	if err := w.setName(name); err != nil {
		return err
	}
	w.description = description
	return nil
}

func (w *Workflow) SetTriggerConditions(conditions []condition.Condition) error {
	for i, c := range conditions {
		if err := c.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("trigger condition", errors.Join(err, errIndex(i)))
		}
	}
	w.triggerConditions = make([]condition.Condition, len(conditions))
	copy(w.triggerConditions, conditions)
	return nil
}

func (w *Workflow) MarkDefault() {
	w.isDefault = true
}

func (w *Workflow) ClearDefault() {
	w.isDefault = false
}

func (w *Workflow) Activate() {
	w.isActive = true
}

func (w *Workflow) Deactivate() {
	w.isActive = false
}

// CanBeDeleted returns a ConflictError for the default workflow.
func (w *Workflow) CanBeDeleted() error {
	if w.isDefault {
		return errs.NewConflictError("workflow", "the default workflow cannot be deleted")
	}
	return nil
}

func (w *Workflow) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Workflow) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	w.name = name
	return nil
}
