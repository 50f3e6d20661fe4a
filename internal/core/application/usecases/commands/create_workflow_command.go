package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/condition"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCreateWorkflowCommandIsNotConstructed = errors.New(
	"CreateWorkflowCommand must be created via NewCreateWorkflowCommand constructor",
)

// WorkflowFields is the editable content of a workflow shared by create and update.
type WorkflowFields struct {
	Name              string
	Description       string
	IsDefault         bool
	IsActive          bool
	TriggerConditions []condition.Condition
}

// CreateWorkflowCommand registers a new workflow. When IsDefault is set the
// previous default loses its flag in the same transaction.
//
// Example:
//
//	cmd, err := NewCreateWorkflowCommand(kernel.NewUUID(), WorkflowFields{Name: "Standard", IsDefault: true, IsActive: true})
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateWorkflowCommand struct {
	workflowID kernel.UUID
	fields     WorkflowFields

	guard guard.ConstructorGuard
}

func NewCreateWorkflowCommand(workflowID kernel.UUID, fields WorkflowFields) (CreateWorkflowCommand, error) {
	if err := errors.Join(
		workflowID.Validate(),
		validateWorkflowFields(fields),
	); err != nil {
		return CreateWorkflowCommand{}, err
	}

	return CreateWorkflowCommand{
		workflowID: workflowID,
		fields:     fields,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateWorkflowCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkflowCommandIsNotConstructed)
}

func (c CreateWorkflowCommand) WorkflowID() kernel.UUID {
	return c.workflowID
}

func (c CreateWorkflowCommand) Fields() WorkflowFields {
	return c.fields
}

func validateWorkflowFields(fields WorkflowFields) error {
	if fields.Name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}
