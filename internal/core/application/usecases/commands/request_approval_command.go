package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrRequestApprovalCommandIsNotConstructed = errors.New(
	"RequestApprovalCommand must be created via NewRequestApprovalCommand constructor",
)

// RequestApprovalCommand opens a pending approval for an order entering a step.
// approverID designates who should resolve it and may be empty.
type RequestApprovalCommand struct {
	approvalID   kernel.UUID
	orderID      kernel.UUID
	stepID       kernel.UUID
	approverID   string
	approvalType string

	guard guard.ConstructorGuard
}

func NewRequestApprovalCommand(
	approvalID, orderID, stepID kernel.UUID,
	approverID, approvalType string,
) (RequestApprovalCommand, error) {
	var typeErr error
	if strings.TrimSpace(approvalType) == "" {
		typeErr = errs.NewValueIsRequiredError("approval_type")
	}
	if err := errors.Join(
		approvalID.Validate(),
		orderID.Validate(),
		stepID.Validate(),
		typeErr,
	); err != nil {
		return RequestApprovalCommand{}, err
	}

	return RequestApprovalCommand{
		approvalID:   approvalID,
		orderID:      orderID,
		stepID:       stepID,
		approverID:   approverID,
		approvalType: approvalType,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RequestApprovalCommand) Validate() error {
	return c.guard.Validate(ErrRequestApprovalCommandIsNotConstructed)
}

func (c RequestApprovalCommand) ApprovalID() kernel.UUID { return c.approvalID }
func (c RequestApprovalCommand) OrderID() kernel.UUID    { return c.orderID }
func (c RequestApprovalCommand) StepID() kernel.UUID     { return c.stepID }
func (c RequestApprovalCommand) ApproverID() string      { return c.approverID }
func (c RequestApprovalCommand) ApprovalType() string    { return c.approvalType }
