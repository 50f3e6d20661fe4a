// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Most handlers read the tables directly with SQL and return read models; the
// ones that need workflow semantics go through the repositories and the
// transition planner instead.
package queries

import (
	"database/sql"
	"encoding/json"
	"time"

	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/condition"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
)

type WorkflowView struct {
	ID                kernel.UUID           `json:"id"`
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	IsDefault         bool                  `json:"is_default"`
	IsActive          bool                  `json:"is_active"`
	TriggerConditions []condition.Condition `json:"trigger_conditions"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Steps             []StepView            `json:"steps,omitempty"`
}

type StepView struct {
	ID               kernel.UUID             `json:"id"`
	WorkflowID       kernel.UUID             `json:"workflow_id"`
	StepOrder        int                     `json:"step_order"`
	StatusName       string                  `json:"status_name"`
	Conditions       []condition.Condition   `json:"conditions"`
	Actions          []workflow.Action       `json:"actions"`
	RequiresApproval bool                    `json:"requires_approval"`
	ApprovalRole     string                  `json:"approval_role,omitempty"`
	Notifications    []workflow.Notification `json:"notifications"`
}

// ApprovalView is an approval request. ApproverID is nil until someone is
// designated or resolves it.
type ApprovalView struct {
	ID           kernel.UUID `json:"id"`
	OrderID      kernel.UUID `json:"order_id"`
	StepID       kernel.UUID `json:"workflow_step_id"`
	ApprovalType string      `json:"approval_type"`
	ApproverID   *string     `json:"approver_id"`
	Status       string      `json:"status"`
	Comments     string      `json:"comments"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// HistoryEntryView is a status history row. ChangedBy is nil for system changes.
type HistoryEntryView struct {
	ID         kernel.UUID  `json:"id"`
	OrderID    kernel.UUID  `json:"order_id"`
	WorkflowID *kernel.UUID `json:"workflow_id"`
	StepID     *kernel.UUID `json:"workflow_step_id"`
	OldStatus  string       `json:"old_status"`
	NewStatus  string       `json:"new_status"`
	ChangedBy  *string      `json:"changed_by"`
	ChangeType string       `json:"change_type"`
	Notes      string       `json:"notes"`
	CreatedAt  time.Time    `json:"created_at"`
}

type AutomationLogView struct {
	ID              kernel.UUID                `json:"id"`
	RuleID          kernel.UUID                `json:"rule_id"`
	OrderID         kernel.UUID                `json:"order_id"`
	TriggerEvent    string                     `json:"trigger_event"`
	ActionsExecuted []automation.ActionOutcome `json:"actions_executed"`
	ExecutionResult string                     `json:"execution_result"`
	ErrorMessage    string                     `json:"error_message"`
	ExecutedAt      time.Time                  `json:"executed_at"`
}

type RuleView struct {
	ID                kernel.UUID                   `json:"id"`
	Name              string                        `json:"name"`
	Description       string                        `json:"description"`
	TriggerConditions []automation.TriggerCondition `json:"trigger_conditions"`
	Actions           []workflow.Action             `json:"actions"`
	Priority          int                           `json:"priority"`
	IsActive          bool                          `json:"is_active"`
	CreatedAt         time.Time                     `json:"created_at"`
	UpdatedAt         time.Time                     `json:"updated_at"`
}

// TransitionView is a step an order may move to next.
type TransitionView struct {
	StepID           kernel.UUID `json:"step_id"`
	StepOrder        int         `json:"step_order"`
	StatusName       string      `json:"status_name"`
	RequiresApproval bool        `json:"requires_approval"`
	ApprovalRole     string      `json:"approval_role,omitempty"`
}

// rowScanner is satisfied by *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func toUUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func toOptionalUUID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil
	}
	id, err := toUUID(raw.UUID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toOptionalString(raw sql.NullString) *string {
	if !raw.Valid {
		return nil
	}
	s := raw.String
	return &s
}

// decodeJSON reads a jsonb column. NULL leaves dst untouched.
func decodeJSON(column string, raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(column, err)
	}
	return nil
}

func storeError(op string, err error) error {
	return errs.NewStoreUnavailableError(op, err)
}
