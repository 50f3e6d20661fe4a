package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrApprovalRequired  = errors.New("approval required")
	ErrNotPending        = errors.New("approval is not pending")
	ErrConflict          = errors.New("conflict")
	ErrActionExecution   = errors.New("action execution failed")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// InvalidTransitionError is returned when the requested status is not reachable
// from the order's current workflow step. It is never retried.
type InvalidTransitionError struct {
	OrderID string
	From    string
	To      string
}

func NewInvalidTransitionError(orderID, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{
		OrderID: orderID,
		From:    from,
		To:      to,
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: order %s cannot move from %q to %q", ErrInvalidTransition, e.OrderID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ApprovalRequiredError is returned when the target step is gated by approval and the
// gate is not yet satisfied. The caller has to request approval first.
type ApprovalRequiredError struct {
	OrderID string
	StepID  string
	Role    string
}

func NewApprovalRequiredError(orderID, stepID, role string) *ApprovalRequiredError {
	return &ApprovalRequiredError{
		OrderID: orderID,
		StepID:  stepID,
		Role:    role,
	}
}

func (e *ApprovalRequiredError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("%s: step %s of order %s needs approval by %s", ErrApprovalRequired, e.StepID, e.OrderID, e.Role)
	}
	return fmt.Sprintf("%s: step %s of order %s", ErrApprovalRequired, e.StepID, e.OrderID)
}

func (e *ApprovalRequiredError) Unwrap() error {
	return ErrApprovalRequired
}

// NotPendingError is returned when resolving an approval that is already resolved.
type NotPendingError struct {
	ApprovalID string
	Status     string
}

func NewNotPendingError(approvalID, status string) *NotPendingError {
	return &NotPendingError{
		ApprovalID: approvalID,
		Status:     status,
	}
}

func (e *NotPendingError) Error() string {
	return fmt.Sprintf("%s: %s is %s", ErrNotPending, e.ApprovalID, e.Status)
}

func (e *NotPendingError) Unwrap() error {
	return ErrNotPending
}

// ConflictError is returned when a write would break a store-level invariant.
type ConflictError struct {
	Resource string
	Reason   string
}

func NewConflictError(resource, reason string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Reason:   reason,
	}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConflict, e.Resource, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ActionExecutionError describes a single failed action. It is collected into
// transition and rule results and never aborts the surrounding operation.
type ActionExecutionError struct {
	ActionType string
	Cause      error
}

func NewActionExecutionError(actionType string, cause error) *ActionExecutionError {
	return &ActionExecutionError{
		ActionType: actionType,
		Cause:      cause,
	}
}

func (e *ActionExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrActionExecution, e.ActionType, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrActionExecution, e.ActionType)
}

func (e *ActionExecutionError) Unwrap() error {
	return ErrActionExecution
}

// StoreUnavailableError wraps any persistence failure. Operations abort on it.
type StoreUnavailableError struct {
	Operation string
	Cause     error
}

func NewStoreUnavailableError(operation string, cause error) *StoreUnavailableError {
	return &StoreUnavailableError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *StoreUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrStoreUnavailable, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrStoreUnavailable, e.Operation)
}

func (e *StoreUnavailableError) Unwrap() error {
	return ErrStoreUnavailable
}
