package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCreateStepCommandIsNotConstructed = errors.New("CreateStepCommand must be created via NewCreateStepCommand constructor")
	ErrUpdateStepCommandIsNotConstructed = errors.New("UpdateStepCommand must be created via NewUpdateStepCommand constructor")
	ErrDeleteStepCommandIsNotConstructed = errors.New("DeleteStepCommand must be created via NewDeleteStepCommand constructor")
)

// CreateStepCommand adds a step to a workflow.
type CreateStepCommand struct {
	stepID     kernel.UUID
	workflowID kernel.UUID
	definition workflow.StepDefinition

	guard guard.ConstructorGuard
}

func NewCreateStepCommand(stepID, workflowID kernel.UUID, def workflow.StepDefinition) (CreateStepCommand, error) {
	if err := errors.Join(stepID.Validate(), workflowID.Validate()); err != nil {
		return CreateStepCommand{}, err
	}
	return CreateStepCommand{
		stepID:     stepID,
		workflowID: workflowID,
		definition: def,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateStepCommand) Validate() error {
	return c.guard.Validate(ErrCreateStepCommandIsNotConstructed)
}

func (c CreateStepCommand) StepID() kernel.UUID                 { return c.stepID }
func (c CreateStepCommand) WorkflowID() kernel.UUID             { return c.workflowID }
func (c CreateStepCommand) Definition() workflow.StepDefinition { return c.definition }

// UpdateStepCommand replaces the definition of a step. The owning workflow does not change.
type UpdateStepCommand struct {
	stepID     kernel.UUID
	definition workflow.StepDefinition

	guard guard.ConstructorGuard
}

func NewUpdateStepCommand(stepID kernel.UUID, def workflow.StepDefinition) (UpdateStepCommand, error) {
	if err := stepID.Validate(); err != nil {
		return UpdateStepCommand{}, err
	}
	return UpdateStepCommand{stepID: stepID, definition: def, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateStepCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStepCommandIsNotConstructed)
}

func (c UpdateStepCommand) StepID() kernel.UUID                 { return c.stepID }
func (c UpdateStepCommand) Definition() workflow.StepDefinition { return c.definition }

type DeleteStepCommand struct {
	stepID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteStepCommand(stepID kernel.UUID) (DeleteStepCommand, error) {
	if err := stepID.Validate(); err != nil {
		return DeleteStepCommand{}, err
	}
	return DeleteStepCommand{stepID: stepID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteStepCommand) Validate() error {
	return c.guard.Validate(ErrDeleteStepCommandIsNotConstructed)
}

func (c DeleteStepCommand) StepID() kernel.UUID { return c.stepID }
