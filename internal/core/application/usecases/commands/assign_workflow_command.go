package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrAssignWorkflowCommandIsNotConstructed = errors.New(
	"AssignWorkflowCommand must be created via NewAssignWorkflowCommand constructor",
)

// AssignWorkflowCommand puts an order under a workflow, replacing any previous
// assignment.
//
// Example:
//
//	cmd, err := NewAssignWorkflowCommand(orderID, expressWorkflowID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AssignWorkflowCommand struct {
	orderID    kernel.UUID
	workflowID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignWorkflowCommand(orderID, workflowID kernel.UUID) (AssignWorkflowCommand, error) {
	if err := errors.Join(orderID.Validate(), workflowID.Validate()); err != nil {
		return AssignWorkflowCommand{}, err
	}
	return AssignWorkflowCommand{
		orderID:    orderID,
		workflowID: workflowID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignWorkflowCommand) Validate() error {
	return c.guard.Validate(ErrAssignWorkflowCommandIsNotConstructed)
}

func (c AssignWorkflowCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignWorkflowCommand) WorkflowID() kernel.UUID {
	return c.workflowID
}
