package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrListApprovalsQueryIsNotConstructed = errors.New(
		"ListApprovalsQuery must be created via NewListApprovalsQuery constructor",
	)
	ErrGetApprovalQueryIsNotConstructed = errors.New(
		"GetApprovalQuery must be created via NewGetApprovalQuery constructor",
	)
	ErrIsGateSatisfiedQueryIsNotConstructed = errors.New(
		"IsGateSatisfiedQuery must be created via NewIsGateSatisfiedQuery constructor",
	)
)

// ListApprovalsQuery lists approvals, oldest first. Nil filters match all.
type ListApprovalsQuery struct {
	orderID *kernel.UUID
	stepID  *kernel.UUID
	status  *approval.Status
	guard   guard.ConstructorGuard
}

func NewListApprovalsQuery(orderID, stepID *kernel.UUID, status *approval.Status) (ListApprovalsQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListApprovalsQuery{}, err
		}
	}
	return ListApprovalsQuery{
		orderID: orderID,
		stepID:  stepID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListApprovalsQuery) Validate() error {
	return q.guard.Validate(ErrListApprovalsQueryIsNotConstructed)
}

func (q ListApprovalsQuery) OrderID() *kernel.UUID    { return q.orderID }
func (q ListApprovalsQuery) StepID() *kernel.UUID     { return q.stepID }
func (q ListApprovalsQuery) Status() *approval.Status { return q.status }

type GetApprovalQuery struct {
	approvalID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetApprovalQuery(approvalID kernel.UUID) (GetApprovalQuery, error) {
	if err := approvalID.Validate(); err != nil {
		return GetApprovalQuery{}, err
	}
	return GetApprovalQuery{approvalID: approvalID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetApprovalQuery) Validate() error {
	return q.guard.Validate(ErrGetApprovalQueryIsNotConstructed)
}

func (q GetApprovalQuery) ApprovalID() kernel.UUID { return q.approvalID }

// IsGateSatisfiedQuery asks whether an order may enter a step requiring approval.
type IsGateSatisfiedQuery struct {
	orderID kernel.UUID
	stepID  kernel.UUID
	guard   guard.ConstructorGuard
}

func NewIsGateSatisfiedQuery(orderID, stepID kernel.UUID) (IsGateSatisfiedQuery, error) {
	if err := errors.Join(orderID.Validate(), stepID.Validate()); err != nil {
		return IsGateSatisfiedQuery{}, err
	}
	return IsGateSatisfiedQuery{orderID: orderID, stepID: stepID, guard: guard.NewConstructorGuard()}, nil
}

func (q IsGateSatisfiedQuery) Validate() error {
	return q.guard.Validate(ErrIsGateSatisfiedQueryIsNotConstructed)
}

func (q IsGateSatisfiedQuery) OrderID() kernel.UUID { return q.orderID }
func (q IsGateSatisfiedQuery) StepID() kernel.UUID  { return q.stepID }
