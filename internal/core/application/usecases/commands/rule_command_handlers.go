package commands

import (
	"context"

	"orderflow/internal/core/domain/model/automation"
)

type CreateRuleCommandHandler struct {
	uowFactory RuleUoWFactory
}

func NewCreateRuleCommandHandler(uowFactory RuleUoWFactory) CreateRuleCommandHandler {
	return CreateRuleCommandHandler{uowFactory: uowFactory}
}

func (h CreateRuleCommandHandler) Handle(ctx context.Context, command SaveRuleCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	rule, err := automation.NewRule(command.Params())
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

	if err = uow.RuleRepository().Add(ctx, rule); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type UpdateRuleCommandHandler struct {
	uowFactory RuleUoWFactory
}

func NewUpdateRuleCommandHandler(uowFactory RuleUoWFactory) UpdateRuleCommandHandler {
	return UpdateRuleCommandHandler{uowFactory: uowFactory}
}

func (h UpdateRuleCommandHandler) Handle(ctx context.Context, command SaveRuleCommand) error {
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

	repo := uow.RuleRepository()
	rule, err := repo.Get(ctx, command.Params().ID)
	if err != nil {
		return err
	}
	if err = rule.Update(command.Params()); err != nil {
		return err
	}
	if err = repo.Update(ctx, rule); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type DeleteRuleCommandHandler struct {
	uowFactory RuleUoWFactory
}

func NewDeleteRuleCommandHandler(uowFactory RuleUoWFactory) DeleteRuleCommandHandler {
	return DeleteRuleCommandHandler{uowFactory: uowFactory}
}

func (h DeleteRuleCommandHandler) Handle(ctx context.Context, command DeleteRuleCommand) error {
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

	if err := uow.RuleRepository().Delete(ctx, command.RuleID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
