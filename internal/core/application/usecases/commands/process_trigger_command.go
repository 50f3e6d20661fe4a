package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrProcessTriggerCommandIsNotConstructed = errors.New(
	"ProcessTriggerCommand must be created via NewProcessTriggerCommand constructor",
)

// ProcessTriggerCommand announces that event happened to an order, letting the
// automation rules listening to it run.
type ProcessTriggerCommand struct {
	orderID kernel.UUID
	event   string

	guard guard.ConstructorGuard
}

func NewProcessTriggerCommand(orderID kernel.UUID, event string) (ProcessTriggerCommand, error) {
	var eventErr error
	if strings.TrimSpace(event) == "" {
		eventErr = errs.NewValueIsRequiredError("event")
	}
	if err := errors.Join(orderID.Validate(), eventErr); err != nil {
		return ProcessTriggerCommand{}, err
	}

	return ProcessTriggerCommand{
		orderID: orderID,
		event:   event,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ProcessTriggerCommand) Validate() error {
	return c.guard.Validate(ErrProcessTriggerCommandIsNotConstructed)
}

func (c ProcessTriggerCommand) OrderID() kernel.UUID { return c.orderID }
func (c ProcessTriggerCommand) Event() string        { return c.event }
