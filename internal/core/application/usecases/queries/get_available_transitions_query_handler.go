package queries

import (
	"context"

	"orderflow/internal/core/application/lookup"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// GetAvailableTransitionsQueryHandler lists the steps an order may move to from
// its live status. Orders outside workflow management get an empty list.
type GetAvailableTransitionsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	orders     ports.OrderStore
	planner    services.TransitionPlanner
}

func NewGetAvailableTransitionsQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	orders ports.OrderStore,
) GetAvailableTransitionsQueryHandler {
	return GetAvailableTransitionsQueryHandler{
		uowFactory: uowFactory,
		orders:     orders,
		planner:    services.NewTransitionPlanner(services.NewConditionEvaluator()),
	}
}

func (h GetAvailableTransitionsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableTransitionsQuery,
) ([]TransitionView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	wf, err := lookup.OrderWorkflow(ctx, uow, query.OrderID())
	if err != nil {
		return nil, err
	}
	if wf == nil {
		return []TransitionView{}, nil
	}

	steps, err := uow.StepRepository().ListByWorkflow(ctx, wf.ID())
	if err != nil {
		return nil, err
	}
	facts, err := lookup.Facts(ctx, uow, snapshot, lookup.StepConditions(steps))
	if err != nil {
		return nil, err
	}

	available := h.planner.AvailableTransitions(steps, facts)
	transitions := make([]TransitionView, 0, len(available))
	for _, s := range available {
		transitions = append(transitions, TransitionView{
			StepID:           s.ID(),
			StepOrder:        s.StepOrder(),
			StatusName:       s.StatusName(),
			RequiresApproval: s.RequiresApproval(),
			ApprovalRole:     s.ApprovalRole(),
		})
	}
	return transitions, nil
}
