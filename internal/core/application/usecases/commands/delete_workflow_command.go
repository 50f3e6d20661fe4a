package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrDeleteWorkflowCommandIsNotConstructed = errors.New(
	"DeleteWorkflowCommand must be created via NewDeleteWorkflowCommand constructor",
)

type DeleteWorkflowCommand struct {
	workflowID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteWorkflowCommand(workflowID kernel.UUID) (DeleteWorkflowCommand, error) {
	if err := workflowID.Validate(); err != nil {
		return DeleteWorkflowCommand{}, err
	}
	return DeleteWorkflowCommand{workflowID: workflowID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteWorkflowCommand) Validate() error {
	return c.guard.Validate(ErrDeleteWorkflowCommandIsNotConstructed)
}

func (c DeleteWorkflowCommand) WorkflowID() kernel.UUID {
	return c.workflowID
}
