package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/ports"
)

// RequestApprovalCommandHandler records a new pending approval. The order and the
// step must exist; the engine never opens approvals on its own.
type RequestApprovalCommandHandler struct {
	uowFactory ApprovalUoWFactory
	orders     ports.OrderStore
	logger     *slog.Logger
}

func NewRequestApprovalCommandHandler(
	uowFactory ApprovalUoWFactory,
	orders ports.OrderStore,
	logger *slog.Logger,
) RequestApprovalCommandHandler {
	return RequestApprovalCommandHandler{
		uowFactory: uowFactory,
		orders:     orders,
		logger:     logger.With("component", "request_approval"),
	}
}

func (h RequestApprovalCommandHandler) Handle(ctx context.Context, command RequestApprovalCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if _, err := h.orders.Get(ctx, command.OrderID()); err != nil {
		return err
	}

	a, err := approval.NewApproval(
		command.ApprovalID(),
		command.OrderID(),
		command.StepID(),
		command.ApproverID(),
		command.ApprovalType(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.StepRepository().Get(ctx, command.StepID()); err != nil {
		return err
	}
	if err = uow.ApprovalRepository().Add(ctx, a); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "approval requested",
		"approval_id", a.ID().String(),
		"order_id", a.OrderID().String(),
		"step_id", a.StepID().String(),
	)
	return nil
}
