package workflow

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// Assignment binds an order to the workflow that governs it. An order has at most
// one; re-assigning replaces the previous one.
type Assignment struct {
	OrderID    kernel.UUID
	WorkflowID kernel.UUID
	IsActive   bool
	AssignedAt time.Time
}

func NewAssignment(orderID, workflowID kernel.UUID, at time.Time) (Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return Assignment{}, err
	}
	if err := workflowID.Validate(); err != nil {
		return Assignment{}, err
	}
	return Assignment{
		OrderID:    orderID,
		WorkflowID: workflowID,
		IsActive:   true,
		AssignedAt: at.UTC(),
	}, nil
}
