package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetWorkflowQueryIsNotConstructed = errors.New(
		"GetWorkflowQuery must be created via NewGetWorkflowQuery constructor",
	)
	ErrListWorkflowsQueryIsNotConstructed = errors.New(
		"ListWorkflowsQuery must be created via NewListWorkflowsQuery constructor",
	)
	ErrListStepsQueryIsNotConstructed = errors.New(
		"ListStepsQuery must be created via NewListStepsQuery constructor",
	)
	ErrGetDefaultWorkflowQueryIsNotConstructed = errors.New(
		"GetDefaultWorkflowQuery must be created via NewGetDefaultWorkflowQuery constructor",
	)
	ErrGetOrderWorkflowQueryIsNotConstructed = errors.New(
		"GetOrderWorkflowQuery must be created via NewGetOrderWorkflowQuery constructor",
	)
)

// GetWorkflowQuery reads one workflow together with its steps.
type GetWorkflowQuery struct {
	workflowID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetWorkflowQuery(workflowID kernel.UUID) (GetWorkflowQuery, error) {
	if err := workflowID.Validate(); err != nil {
		return GetWorkflowQuery{}, err
	}
	return GetWorkflowQuery{workflowID: workflowID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWorkflowQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkflowQueryIsNotConstructed)
}

func (q GetWorkflowQuery) WorkflowID() kernel.UUID { return q.workflowID }

// ListWorkflowsQuery lists workflows without their steps. Nil filters match all.
type ListWorkflowsQuery struct {
	active    *bool
	isDefault *bool
	guard     guard.ConstructorGuard
}

func NewListWorkflowsQuery(active, isDefault *bool) ListWorkflowsQuery {
	return ListWorkflowsQuery{active: active, isDefault: isDefault, guard: guard.NewConstructorGuard()}
}

func (q ListWorkflowsQuery) Validate() error {
	return q.guard.Validate(ErrListWorkflowsQueryIsNotConstructed)
}

func (q ListWorkflowsQuery) Active() *bool    { return q.active }
func (q ListWorkflowsQuery) IsDefault() *bool { return q.isDefault }

// ListStepsQuery lists the steps of a workflow in step order.
type ListStepsQuery struct {
	workflowID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewListStepsQuery(workflowID kernel.UUID) (ListStepsQuery, error) {
	if err := workflowID.Validate(); err != nil {
		return ListStepsQuery{}, err
	}
	return ListStepsQuery{workflowID: workflowID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListStepsQuery) Validate() error {
	return q.guard.Validate(ErrListStepsQueryIsNotConstructed)
}

func (q ListStepsQuery) WorkflowID() kernel.UUID { return q.workflowID }

type GetDefaultWorkflowQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDefaultWorkflowQuery() GetDefaultWorkflowQuery {
	return GetDefaultWorkflowQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDefaultWorkflowQuery) Validate() error {
	return q.guard.Validate(ErrGetDefaultWorkflowQueryIsNotConstructed)
}

// GetOrderWorkflowQuery reads the workflow governing an order: its assignment,
// else the default workflow.
type GetOrderWorkflowQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderWorkflowQuery(orderID kernel.UUID) (GetOrderWorkflowQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderWorkflowQuery{}, err
	}
	return GetOrderWorkflowQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderWorkflowQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderWorkflowQueryIsNotConstructed)
}

func (q GetOrderWorkflowQuery) OrderID() kernel.UUID { return q.orderID }
