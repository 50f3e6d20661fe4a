// Package history holds the append-only status ledger of orders.
package history

import (
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ChangeType tells what caused a status change.
type ChangeType string

const (
	// Manual changes are requested by a user through the API.
	Manual ChangeType = "manual"
	// Automated changes follow an approval or an automation rule.
	Automated ChangeType = "automated"
	// Workflow changes are made by actions of a workflow step.
	Workflow ChangeType = "workflow"
)

func (c ChangeType) Validate() error {
	switch c {
	case Manual, Automated, Workflow:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("change_type", fmt.Errorf("%q is not a valid change type", string(c)))
	}
}

// Entry is one row of the status history. Entries are never updated or deleted.
// WorkflowID and StepID are nil for orders outside workflow management, ChangedBy
// is empty for system changes.
type Entry struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	WorkflowID *kernel.UUID
	StepID     *kernel.UUID
	OldStatus  string
	NewStatus  string
	ChangedBy  string
	ChangeType ChangeType
	Notes      string
	CreatedAt  time.Time
}

// NewEntry builds a history row stamped with the current time.
func NewEntry(
	orderID kernel.UUID,
	workflowID, stepID *kernel.UUID,
	oldStatus, newStatus, changedBy string,
	changeType ChangeType,
	notes string,
) (Entry, error) {
	if err := orderID.Validate(); err != nil {
		return Entry{}, err
	}
	if newStatus == "" {
		return Entry{}, errs.NewValueIsRequiredError("new_status")
	}
	if err := changeType.Validate(); err != nil {
		return Entry{}, err
	}

	return Entry{
		ID:         kernel.NewUUID(),
		OrderID:    orderID,
		WorkflowID: workflowID,
		StepID:     stepID,
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		ChangedBy:  changedBy,
		ChangeType: changeType,
		Notes:      notes,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
