// Package approval models approval requests raised for an order entering a
// workflow step that requires sign-off.
package approval

import (
	"errors"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrApprovalIsNotConstructed = errors.New("Approval must be created via NewApproval constructor")

// Approval is one sign-off request for an (order, step) pair. Several approvals may
// exist for the same pair; the gate is open once none of them is pending and at
// least one was approved.
type Approval struct {
	id           kernel.UUID
	orderID      kernel.UUID
	stepID       kernel.UUID
	approvalType string
	approverID   string
	status       Status
	comments     string
	createdAt    time.Time
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

// NewApproval opens a pending request. approverID designates who is expected to
// resolve it and may be empty.
func NewApproval(id, orderID, stepID kernel.UUID, approverID, approvalType string) (*Approval, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		stepID.Validate(),
	); err != nil {
		return nil, err
	}
	approvalType = strings.TrimSpace(approvalType)
	if approvalType == "" {
		return nil, errs.NewValueIsRequiredError("approval type")
	}

	now := time.Now().UTC()
	return &Approval{
		id:           id,
		orderID:      orderID,
		stepID:       stepID,
		approvalType: approvalType,
		approverID:   strings.TrimSpace(approverID),
		status:       Pending,
		createdAt:    now,
		updatedAt:    now,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreParams carries a persisted approval.
type RestoreParams struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	StepID       kernel.UUID
	ApprovalType string
	ApproverID   string
	Status       Status
	Comments     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func RestoreApproval(p RestoreParams) (*Approval, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.OrderID.Validate(),
		p.StepID.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Approval{
		id:           p.ID,
		orderID:      p.OrderID,
		stepID:       p.StepID,
		approvalType: p.ApprovalType,
		approverID:   p.ApproverID,
		status:       p.Status,
		comments:     p.Comments,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Resolve records the decision. It fails with NotPendingError when the approval was
// already resolved, so a second resolution never goes through.
func (a *Approval) Resolve(approverID string, decision Status, comments string) error {
	if a.status != Pending {
		return errs.NewNotPendingError(a.id.String(), a.status.String())
	}
	if err := decision.ValidateDecision(); err != nil {
		return err
	}

	if approverID = strings.TrimSpace(approverID); approverID != "" {
		a.approverID = approverID
	}
	a.status = decision
	a.comments = comments
	a.updatedAt = time.Now().UTC()
	return nil
}

func (a *Approval) Validate() error {
	if a == nil {
		return ErrApprovalIsNotConstructed
	}
	return a.guard.Validate(ErrApprovalIsNotConstructed)
}

func (a *Approval) ID() kernel.UUID      { return a.id }
func (a *Approval) OrderID() kernel.UUID { return a.orderID }
func (a *Approval) StepID() kernel.UUID  { return a.stepID }
func (a *Approval) ApprovalType() string { return a.approvalType }
func (a *Approval) ApproverID() string   { return a.approverID }
func (a *Approval) Status() Status       { return a.status }
func (a *Approval) Comments() string     { return a.comments }
func (a *Approval) CreatedAt() time.Time { return a.createdAt }
func (a *Approval) UpdatedAt() time.Time { return a.updatedAt }

func (a *Approval) IsPending() bool {
	return a.status == Pending
}
