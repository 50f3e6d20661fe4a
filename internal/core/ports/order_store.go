package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderStore is the commerce order store. The workflow core reads snapshots from it
// and writes single fields; it never caches what it reads.
type OrderStore interface {
	// Get returns a fresh snapshot or ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Snapshot, error)

	// UpdateStatus writes the order status field. Last write wins.
	UpdateStatus(ctx context.Context, id kernel.UUID, status string) error

	UpdatePriority(ctx context.Context, id kernel.UUID, priority int) error

	SetCustomField(ctx context.Context, id kernel.UUID, key, value string) error

	// ListOpenIDs returns the ids of orders whose status is not one of excluded.
	ListOpenIDs(ctx context.Context, excluded []string) ([]kernel.UUID, error)
}
