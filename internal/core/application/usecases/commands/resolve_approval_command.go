package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrResolveApprovalCommandIsNotConstructed = errors.New(
	"ResolveApprovalCommand must be created via NewResolveApprovalCommand constructor",
)

// ResolveApprovalCommand approves or rejects a pending approval.
type ResolveApprovalCommand struct {
	approvalID kernel.UUID
	approverID string
	decision   approval.Status
	comments   string

	guard guard.ConstructorGuard
}

func NewResolveApprovalCommand(
	approvalID kernel.UUID,
	approverID string,
	decision approval.Status,
	comments string,
) (ResolveApprovalCommand, error) {
	if err := errors.Join(
		approvalID.Validate(),
		decision.ValidateDecision(),
	); err != nil {
		return ResolveApprovalCommand{}, err
	}

	return ResolveApprovalCommand{
		approvalID: approvalID,
		approverID: approverID,
		decision:   decision,
		comments:   comments,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveApprovalCommand) Validate() error {
	return c.guard.Validate(ErrResolveApprovalCommandIsNotConstructed)
}

func (c ResolveApprovalCommand) ApprovalID() kernel.UUID   { return c.approvalID }
func (c ResolveApprovalCommand) ApproverID() string        { return c.approverID }
func (c ResolveApprovalCommand) Decision() approval.Status { return c.decision }
func (c ResolveApprovalCommand) Comments() string          { return c.comments }
