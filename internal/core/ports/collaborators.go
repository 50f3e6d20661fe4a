package ports

import (
	"context"

	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/kernel"
)

// Notifier hands a message to the notification service. Delivery is not awaited.
type Notifier interface {
	Send(ctx context.Context, recipient, templateKey string, data map[string]any) error
}

// AuditSink receives audit events for external consumers.
type AuditSink interface {
	Append(ctx context.Context, event string, payload map[string]any) error
}

// InventoryAllocator reserves stock for an order.
type InventoryAllocator interface {
	Allocate(ctx context.Context, orderID kernel.UUID) error
}

// ApprovalEventPublisher announces that a step's approval gate opened.
type ApprovalEventPublisher interface {
	PublishApprovalResolved(ctx context.Context, event approval.ResolvedEvent) error
}
