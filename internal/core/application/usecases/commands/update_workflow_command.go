package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrUpdateWorkflowCommandIsNotConstructed = errors.New(
	"UpdateWorkflowCommand must be created via NewUpdateWorkflowCommand constructor",
)

// UpdateWorkflowCommand replaces the editable fields of a workflow.
type UpdateWorkflowCommand struct {
	workflowID kernel.UUID
	fields     WorkflowFields

	guard guard.ConstructorGuard
}

func NewUpdateWorkflowCommand(workflowID kernel.UUID, fields WorkflowFields) (UpdateWorkflowCommand, error) {
	if err := errors.Join(
		workflowID.Validate(),
		validateWorkflowFields(fields),
	); err != nil {
		return UpdateWorkflowCommand{}, err
	}

	return UpdateWorkflowCommand{
		workflowID: workflowID,
		fields:     fields,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateWorkflowCommand) Validate() error {
	return c.guard.Validate(ErrUpdateWorkflowCommandIsNotConstructed)
}

func (c UpdateWorkflowCommand) WorkflowID() kernel.UUID {
	return c.workflowID
}

func (c UpdateWorkflowCommand) Fields() WorkflowFields {
	return c.fields
}
