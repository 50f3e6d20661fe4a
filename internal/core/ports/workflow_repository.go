// Package ports defines the contracts between the workflow core and its
// infrastructure: repositories bound to a unit of work, the external order store
// and the collaborators that receive notifications, audit entries and events.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
)

// WorkflowFilter narrows ListWorkflows. Nil fields do not filter.
type WorkflowFilter struct {
	Active  *bool
	Default *bool
}

// WorkflowRepository persists Workflow aggregates.
type WorkflowRepository interface {
	Add(ctx context.Context, wf *workflow.Workflow) error

	// Update persists changes. Returns ObjectNotFoundError when the workflow does not exist.
	Update(ctx context.Context, wf *workflow.Workflow) error

	// Delete removes the workflow together with its steps.
	Delete(ctx context.Context, id kernel.UUID) error

	Get(ctx context.Context, id kernel.UUID) (*workflow.Workflow, error)

	List(ctx context.Context, filter WorkflowFilter) ([]*workflow.Workflow, error)

	// GetDefault returns the default workflow or ObjectNotFoundError when there is none.
	GetDefault(ctx context.Context) (*workflow.Workflow, error)

	// ClearDefaultExcept removes the default flag from every workflow but keep.
	// Callers run it in the same transaction and before the write that sets the
	// flag on keep; the store allows a single default row.
	ClearDefaultExcept(ctx context.Context, keep kernel.UUID) error
}

// StepRepository persists workflow steps.
type StepRepository interface {
	Add(ctx context.Context, step *workflow.Step) error
	Update(ctx context.Context, step *workflow.Step) error
	Delete(ctx context.Context, id kernel.UUID) error
	Get(ctx context.Context, id kernel.UUID) (*workflow.Step, error)

	// ListByWorkflow returns the steps of a workflow ordered by step order.
	ListByWorkflow(ctx context.Context, workflowID kernel.UUID) ([]*workflow.Step, error)
}

// AssignmentRepository stores which workflow governs which order.
type AssignmentRepository interface {
	// Upsert creates or replaces the assignment of the order.
	Upsert(ctx context.Context, assignment workflow.Assignment) error

	// Get returns the active assignment of the order or ObjectNotFoundError.
	Get(ctx context.Context, orderID kernel.UUID) (workflow.Assignment, error)
}
