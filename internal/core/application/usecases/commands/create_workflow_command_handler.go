package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
)

// CreateWorkflowCommandHandler persists new workflows and keeps the default flag
// exclusive.
type CreateWorkflowCommandHandler struct {
	uowFactory WorkflowUoWFactory
}

func NewCreateWorkflowCommandHandler(uowFactory WorkflowUoWFactory) CreateWorkflowCommandHandler {
	return CreateWorkflowCommandHandler{uowFactory: uowFactory}
}

func (h CreateWorkflowCommandHandler) Handle(ctx context.Context, command CreateWorkflowCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	wf, err := buildWorkflow(command.WorkflowID(), command.Fields())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WorkflowRepository()
	if wf.IsDefault() {
		if err = repo.ClearDefaultExcept(ctx, wf.ID()); err != nil {
			return err
		}
	}
	if err = repo.Add(ctx, wf); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func buildWorkflow(id kernel.UUID, fields WorkflowFields) (*workflow.Workflow, error) {
	return workflow.RestoreWorkflow(id, fields.Name, fields.Description, fields.IsDefault, fields.IsActive, fields.TriggerConditions)
}
