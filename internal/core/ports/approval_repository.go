package ports

import (
	"context"

	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/kernel"
)

// ApprovalFilter narrows List. Nil fields do not filter.
type ApprovalFilter struct {
	OrderID *kernel.UUID
	StepID  *kernel.UUID
	Status  *approval.Status
}

type ApprovalRepository interface {
	Add(ctx context.Context, a *approval.Approval) error

	// Update persists a resolution. Implementations only update rows still pending,
	// and report NotPendingError otherwise.
	Update(ctx context.Context, a *approval.Approval) error

	Get(ctx context.Context, id kernel.UUID) (*approval.Approval, error)

	// ListByOrderStep returns every approval raised for the pair, oldest first.
	ListByOrderStep(ctx context.Context, orderID, stepID kernel.UUID) ([]*approval.Approval, error)

	List(ctx context.Context, filter ApprovalFilter) ([]*approval.Approval, error)
}
