package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrListStatusHistoryQueryIsNotConstructed = errors.New(
		"ListStatusHistoryQuery must be created via NewListStatusHistoryQuery constructor",
	)
	ErrListAutomationLogsQueryIsNotConstructed = errors.New(
		"ListAutomationLogsQuery must be created via NewListAutomationLogsQuery constructor",
	)
)

// ListStatusHistoryQuery reads the status history of an order, oldest first.
type ListStatusHistoryQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewListStatusHistoryQuery(orderID kernel.UUID) (ListStatusHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListStatusHistoryQuery{}, err
	}
	return ListStatusHistoryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListStatusHistoryQuery) Validate() error {
	return q.guard.Validate(ErrListStatusHistoryQueryIsNotConstructed)
}

func (q ListStatusHistoryQuery) OrderID() kernel.UUID { return q.orderID }

// ListAutomationLogsQuery reads the automation log, oldest first. Nil filters match all.
type ListAutomationLogsQuery struct {
	orderID *kernel.UUID
	ruleID  *kernel.UUID
	guard   guard.ConstructorGuard
}

func NewListAutomationLogsQuery(orderID, ruleID *kernel.UUID) ListAutomationLogsQuery {
	return ListAutomationLogsQuery{orderID: orderID, ruleID: ruleID, guard: guard.NewConstructorGuard()}
}

func (q ListAutomationLogsQuery) Validate() error {
	return q.guard.Validate(ErrListAutomationLogsQueryIsNotConstructed)
}

func (q ListAutomationLogsQuery) OrderID() *kernel.UUID { return q.orderID }
func (q ListAutomationLogsQuery) RuleID() *kernel.UUID  { return q.ruleID }
