package commands

import (
	"context"
)

// DeleteWorkflowCommandHandler removes a workflow and its steps. The default
// workflow cannot be deleted (ConflictError).
type DeleteWorkflowCommandHandler struct {
	uowFactory WorkflowUoWFactory
}

func NewDeleteWorkflowCommandHandler(uowFactory WorkflowUoWFactory) DeleteWorkflowCommandHandler {
	return DeleteWorkflowCommandHandler{uowFactory: uowFactory}
}

func (h DeleteWorkflowCommandHandler) Handle(ctx context.Context, command DeleteWorkflowCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WorkflowRepository()
	wf, err := repo.Get(ctx, command.WorkflowID())
	if err != nil {
		return err
	}
	if err = wf.CanBeDeleted(); err != nil {
		return err
	}
	if err = repo.Delete(ctx, wf.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
