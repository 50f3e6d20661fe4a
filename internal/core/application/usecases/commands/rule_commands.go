package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrSaveRuleCommandIsNotConstructed   = errors.New("SaveRuleCommand must be created via NewSaveRuleCommand constructor")
	ErrDeleteRuleCommandIsNotConstructed = errors.New("DeleteRuleCommand must be created via NewDeleteRuleCommand constructor")
)

// SaveRuleCommand carries a full rule definition for create and update.
type SaveRuleCommand struct {
	params automation.RuleParams

	guard guard.ConstructorGuard
}

func NewSaveRuleCommand(params automation.RuleParams) (SaveRuleCommand, error) {
	if err := params.ID.Validate(); err != nil {
		return SaveRuleCommand{}, err
	}
	return SaveRuleCommand{params: params, guard: guard.NewConstructorGuard()}, nil
}

func (c SaveRuleCommand) Validate() error {
	return c.guard.Validate(ErrSaveRuleCommandIsNotConstructed)
}

func (c SaveRuleCommand) Params() automation.RuleParams {
	return c.params
}

type DeleteRuleCommand struct {
	ruleID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteRuleCommand(ruleID kernel.UUID) (DeleteRuleCommand, error) {
	if err := ruleID.Validate(); err != nil {
		return DeleteRuleCommand{}, err
	}
	return DeleteRuleCommand{ruleID: ruleID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteRuleCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRuleCommandIsNotConstructed)
}

func (c DeleteRuleCommand) RuleID() kernel.UUID {
	return c.ruleID
}
