package commands

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/metrics"
)

// ResolveApprovalResult reports the resolved approval and whether its step's gate
// is now open.
type ResolveApprovalResult struct {
	Approval      *approval.Approval
	GateSatisfied bool
}

// ResolveApprovalCommandHandler resolves approvals under the order's lock. When an
// approval opens the gate it publishes an approval.ResolvedEvent after the lock is
// released; the consumer of that event moves the order into the step.
//
// A second resolution of the same approval fails with NotPendingError and publishes
// nothing, so the auto-transition fires at most once per approval.
type ResolveApprovalCommandHandler struct {
	uowFactory ApprovalUoWFactory
	locks      OrderLocker
	gate       services.ApprovalGate
	publisher  ports.ApprovalEventPublisher
	metrics    *metrics.Recorder
	logger     *slog.Logger
}

func NewResolveApprovalCommandHandler(
	uowFactory ApprovalUoWFactory,
	locks OrderLocker,
	publisher ports.ApprovalEventPublisher,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) ResolveApprovalCommandHandler {
	return ResolveApprovalCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		gate:       services.NewApprovalGate(),
		publisher:  publisher,
		metrics:    recorder,
		logger:     logger.With("component", "resolve_approval"),
	}
}

func (h ResolveApprovalCommandHandler) Handle(
	ctx context.Context,
	command ResolveApprovalCommand,
) (ResolveApprovalResult, error) {
	if err := command.Validate(); err != nil {
		return ResolveApprovalResult{}, err
	}

	current, err := h.uowFactory.Create().ApprovalRepository().Get(ctx, command.ApprovalID())
	if err != nil {
		return ResolveApprovalResult{}, err
	}

	result, err := func() (ResolveApprovalResult, error) {
		unlock := h.locks.Lock(current.OrderID().String())
		defer unlock()
		return h.resolve(ctx, command)
	}()
	if err != nil {
		return ResolveApprovalResult{}, err
	}

	a := result.Approval
	h.metrics.ApprovalResolved(a.Status().String())
	h.logger.InfoContext(ctx, "approval resolved",
		"approval_id", a.ID().String(),
		"order_id", a.OrderID().String(),
		"decision", a.Status().String(),
		"gate_satisfied", result.GateSatisfied,
	)

	if a.Status() != approval.Approved || !result.GateSatisfied {
		return result, nil
	}

	event := approval.ResolvedEvent{
		ApprovalID: a.ID(),
		OrderID:    a.OrderID(),
		StepID:     a.StepID(),
		ApproverID: a.ApproverID(),
		Decision:   a.Status(),
	}
	if err = h.publisher.PublishApprovalResolved(ctx, event); err != nil {
		return result, fmt.Errorf("approval %s resolved but the auto-transition was not scheduled: %w", a.ID(), err)
	}
	return result, nil
}

func (h ResolveApprovalCommandHandler) resolve(
	ctx context.Context,
	command ResolveApprovalCommand,
) (ResolveApprovalResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ResolveApprovalResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ApprovalRepository()
	a, err := repo.Get(ctx, command.ApprovalID())
	if err != nil {
		return ResolveApprovalResult{}, err
	}
	if err = a.Resolve(command.ApproverID(), command.Decision(), command.Comments()); err != nil {
		return ResolveApprovalResult{}, err
	}
	if err = repo.Update(ctx, a); err != nil {
		return ResolveApprovalResult{}, err
	}

	siblings, err := repo.ListByOrderStep(ctx, a.OrderID(), a.StepID())
	if err != nil {
		return ResolveApprovalResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ResolveApprovalResult{}, err
	}

	return ResolveApprovalResult{
		Approval:      a,
		GateSatisfied: h.gate.IsSatisfied(siblings),
	}, nil
}
