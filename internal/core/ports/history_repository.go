package ports

import (
	"context"

	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/model/kernel"
)

// HistoryRepository is the append-only status history. There is no update or delete.
type HistoryRepository interface {
	Append(ctx context.Context, entry history.Entry) error

	// ListByOrder returns the history of an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]history.Entry, error)
}
