package commands

import (
	"context"
)

// UpdateWorkflowCommandHandler applies workflow edits. Setting the default flag and
// clearing it everywhere else happen in one transaction, so no reader ever sees
// zero or two defaults.
type UpdateWorkflowCommandHandler struct {
	uowFactory WorkflowUoWFactory
}

func NewUpdateWorkflowCommandHandler(uowFactory WorkflowUoWFactory) UpdateWorkflowCommandHandler {
	return UpdateWorkflowCommandHandler{uowFactory: uowFactory}
}

func (h UpdateWorkflowCommandHandler) Handle(ctx context.Context, command UpdateWorkflowCommand) error {
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

	fields := command.Fields()
	if err = wf.Rename(fields.Name, fields.Description); err != nil {
		return err
	}
	if err = wf.SetTriggerConditions(fields.TriggerConditions); err != nil {
		return err
	}
	if fields.IsActive {
		wf.Activate()
	} else {
		wf.Deactivate()
	}
	if fields.IsDefault {
		wf.MarkDefault()
	} else {
		wf.ClearDefault()
	}

	if wf.IsDefault() {
		if err = repo.ClearDefaultExcept(ctx, wf.ID()); err != nil {
			return err
		}
	}
	if err = repo.Update(ctx, wf); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
