package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order to a new status.
//
// skipApproval bypasses the approval gate of the target step. It is set by the
// approval consumer once the gate opened and by automation actions; such changes
// are recorded as automated unless WithChangeType says otherwise.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, "shipped", "u-42", "left the dock", false)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type TransitionOrderCommand struct {
	orderID      kernel.UUID
	newStatus    string
	changedBy    string
	notes        string
	skipApproval bool
	changeType   history.ChangeType

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(
	orderID kernel.UUID,
	newStatus, changedBy, notes string,
	skipApproval bool,
) (TransitionOrderCommand, error) {
	var statusErr error
	if strings.TrimSpace(newStatus) == "" {
		statusErr = errs.NewValueIsRequiredError("new_status")
	}
	if err := errors.Join(orderID.Validate(), statusErr); err != nil {
		return TransitionOrderCommand{}, err
	}

	changeType := history.Manual
	if skipApproval {
		changeType = history.Automated
	}

	return TransitionOrderCommand{
		orderID:      orderID,
		newStatus:    newStatus,
		changedBy:    changedBy,
		notes:        notes,
		skipApproval: skipApproval,
		changeType:   changeType,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// WithChangeType returns a copy recording the change under ct.
func (c TransitionOrderCommand) WithChangeType(ct history.ChangeType) TransitionOrderCommand {
	c.changeType = ct
	return c
}

func (c TransitionOrderCommand) Validate() error {
	if err := c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed); err != nil {
		return err
	}
	return c.changeType.Validate()
}

func (c TransitionOrderCommand) OrderID() kernel.UUID           { return c.orderID }
func (c TransitionOrderCommand) NewStatus() string              { return c.newStatus }
func (c TransitionOrderCommand) ChangedBy() string              { return c.changedBy }
func (c TransitionOrderCommand) Notes() string                  { return c.notes }
func (c TransitionOrderCommand) SkipApproval() bool             { return c.skipApproval }
func (c TransitionOrderCommand) ChangeType() history.ChangeType { return c.changeType }
