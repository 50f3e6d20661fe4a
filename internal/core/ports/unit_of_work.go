package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories obtained
// after Begin share its transaction; without Begin they run each statement on
// its own.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	WorkflowRepository() WorkflowRepository
	StepRepository() StepRepository
	AssignmentRepository() AssignmentRepository
	ApprovalRepository() ApprovalRepository
	RuleRepository() RuleRepository
	AutomationLogRepository() AutomationLogRepository
	HistoryRepository() HistoryRepository
	TagRepository() TagRepository
	FulfillmentRepository() FulfillmentRepository
}
