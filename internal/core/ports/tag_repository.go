package ports

import (
	"context"

	"orderflow/internal/core/domain/model/fulfillment"
	"orderflow/internal/core/domain/model/kernel"
)

// TagRepository manages tags and their association with orders.
type TagRepository interface {
	// GetOrCreate returns the id of the tag with that name, creating it when missing.
	// Concurrent callers with the same name get the same id.
	GetOrCreate(ctx context.Context, name string) (kernel.UUID, error)

	// Attach associates the tag with the order. Attaching twice is a no-op.
	Attach(ctx context.Context, orderID, tagID kernel.UUID) error

	// Names returns the names of the tags attached to the order.
	Names(ctx context.Context, orderID kernel.UUID) ([]string, error)
}

type FulfillmentRepository interface {
	Add(ctx context.Context, f fulfillment.Fulfillment) error
}
