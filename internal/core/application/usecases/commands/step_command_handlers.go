package commands

import (
	"context"
	"fmt"

	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// CreateStepCommandHandler adds a step after checking that the workflow exists and
// that no other step of it uses the same step order.
type CreateStepCommandHandler struct {
	uowFactory WorkflowUoWFactory
}

func NewCreateStepCommandHandler(uowFactory WorkflowUoWFactory) CreateStepCommandHandler {
	return CreateStepCommandHandler{uowFactory: uowFactory}
}

func (h CreateStepCommandHandler) Handle(ctx context.Context, command CreateStepCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	step, err := workflow.NewStep(command.StepID(), command.WorkflowID(), command.Definition())
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

	if _, err = uow.WorkflowRepository().Get(ctx, command.WorkflowID()); err != nil {
		return err
	}

	steps := uow.StepRepository()
	if err = ensureStepOrderFree(ctx, steps, step); err != nil {
		return err
	}
	if err = steps.Add(ctx, step); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type UpdateStepCommandHandler struct {
	uowFactory WorkflowUoWFactory
}

func NewUpdateStepCommandHandler(uowFactory WorkflowUoWFactory) UpdateStepCommandHandler {
	return UpdateStepCommandHandler{uowFactory: uowFactory}
}

func (h UpdateStepCommandHandler) Handle(ctx context.Context, command UpdateStepCommand) error {
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

	steps := uow.StepRepository()
	step, err := steps.Get(ctx, command.StepID())
	if err != nil {
		return err
	}
	if err = step.Update(command.Definition()); err != nil {
		return err
	}
	if err = ensureStepOrderFree(ctx, steps, step); err != nil {
		return err
	}
	if err = steps.Update(ctx, step); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type DeleteStepCommandHandler struct {
	uowFactory WorkflowUoWFactory
}

func NewDeleteStepCommandHandler(uowFactory WorkflowUoWFactory) DeleteStepCommandHandler {
	return DeleteStepCommandHandler{uowFactory: uowFactory}
}

func (h DeleteStepCommandHandler) Handle(ctx context.Context, command DeleteStepCommand) error {
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

	if err := uow.StepRepository().Delete(ctx, command.StepID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ensureStepOrderFree fails with ConflictError when another step of the same
// workflow already uses step's order.
func ensureStepOrderFree(ctx context.Context, steps ports.StepRepository, step *workflow.Step) error {
	siblings, err := steps.ListByWorkflow(ctx, step.WorkflowID())
	if err != nil {
		return err
	}
	for _, s := range siblings {
		if s.ID().IsEqual(step.ID()) {
			continue
		}
		if s.StepOrder() == step.StepOrder() {
			return errs.NewConflictError("workflow step", fmt.Sprintf(
				"step_order %d is already used in workflow %s", step.StepOrder(), step.WorkflowID().String()))
		}
	}
	return nil
}
