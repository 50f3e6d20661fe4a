package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/ports"
)

// AssignWorkflowCommandHandler upserts the order's workflow assignment. Both the
// order and the workflow must exist.
type AssignWorkflowCommandHandler struct {
	uowFactory WorkflowUoWFactory
	orders     ports.OrderStore
}

func NewAssignWorkflowCommandHandler(uowFactory WorkflowUoWFactory, orders ports.OrderStore) AssignWorkflowCommandHandler {
	return AssignWorkflowCommandHandler{uowFactory: uowFactory, orders: orders}
}

func (h AssignWorkflowCommandHandler) Handle(ctx context.Context, command AssignWorkflowCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if _, err := h.orders.Get(ctx, command.OrderID()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := assignWorkflow(ctx, uow, command.OrderID(), command.WorkflowID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type assignmentRepos interface {
	WorkflowRepoFactory
	AssignmentRepoFactory
}

func assignWorkflow(ctx context.Context, repos assignmentRepos, orderID, workflowID kernel.UUID) error {
	if _, err := repos.WorkflowRepository().Get(ctx, workflowID); err != nil {
		return err
	}
	assignment, err := workflow.NewAssignment(orderID, workflowID, time.Now())
	if err != nil {
		return err
	}
	return repos.AssignmentRepository().Upsert(ctx, assignment)
}
