// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	WorkflowRepoFactory interface {
		WorkflowRepository() ports.WorkflowRepository
	}

	StepRepoFactory interface {
		StepRepository() ports.StepRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	ApprovalRepoFactory interface {
		ApprovalRepository() ports.ApprovalRepository
	}

	RuleRepoFactory interface {
		RuleRepository() ports.RuleRepository
	}

	TagRepoFactory interface {
		TagRepository() ports.TagRepository
	}

	FulfillmentRepoFactory interface {
		FulfillmentRepository() ports.FulfillmentRepository
	}

	// WorkflowUoW covers workflow definitions and order assignments.
	WorkflowUoW interface {
		TxManager
		WorkflowRepoFactory
		StepRepoFactory
		AssignmentRepoFactory
	}

	WorkflowUoWFactory interface {
		Create() WorkflowUoW
	}

	// ApprovalUoW covers approval requests and the steps they belong to.
	ApprovalUoW interface {
		TxManager
		ApprovalRepoFactory
		StepRepoFactory
	}

	ApprovalUoWFactory interface {
		Create() ApprovalUoW
	}

	// RuleUoW covers automation rule definitions.
	RuleUoW interface {
		TxManager
		RuleRepoFactory
	}

	RuleUoWFactory interface {
		Create() RuleUoW
	}

	// UoW spans every repository the transition engine and the automation engine touch.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   steps := uow.StepRepository()
	//   approvals := uow.ApprovalRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		WorkflowRepoFactory
		StepRepoFactory
		AssignmentRepoFactory
		ApprovalRepoFactory
		RuleRepoFactory
		TagRepoFactory
		FulfillmentRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// AuditRecorder writes the status history, the automation log and the external
// audit trail.
type AuditRecorder interface {
	// AppendHistory appends a status history row, retrying until it is stored or
	// the retry budget runs out.
	AppendHistory(ctx context.Context, entry history.Entry) error

	// RecordTransition forwards a completed transition to the audit sink.
	RecordTransition(ctx context.Context, entry history.Entry, actionErrors []string)

	// RecordRuleExecution appends the automation log row and forwards it to the audit sink.
	RecordRuleExecution(ctx context.Context, log automation.Log) error
}

// OrderLocker serializes mutating operations per order.
type OrderLocker interface {
	Lock(key string) (unlock func())
}
