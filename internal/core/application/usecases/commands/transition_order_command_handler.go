package commands

import (
	"context"
	"errors"
	"log/slog"

	"orderflow/internal/core/application/lookup"
	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/metrics"
)

// TransitionResult reports a status change. Success holds as long as the status was
// written; Errors lists the failed step actions as "type: message".
type TransitionResult struct {
	Success   bool
	OldStatus string
	NewStatus string
	Errors    []string
}

// TransitionOrderCommandHandler is the status transition engine.
//
// Under the order's lock it reads a fresh snapshot, checks the target against the
// order's workflow and approval gate, writes the status and appends exactly one
// history row. Step actions, notifications and the audit record follow after the
// lock is released. Orders without an assigned or default workflow accept any
// status.
//
// A transition does not raise the status_changed trigger by itself; callers that
// want rules to react send the event through ProcessTrigger.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	orders     ports.OrderStore
	locks      OrderLocker
	actions    ActionRunner
	notifier   ports.Notifier
	audit      AuditRecorder
	planner    services.TransitionPlanner
	gate       services.ApprovalGate
	metrics    *metrics.Recorder
	logger     *slog.Logger
}

func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	orders ports.OrderStore,
	locks OrderLocker,
	actions ActionRunner,
	notifier ports.Notifier,
	audit AuditRecorder,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) *TransitionOrderCommandHandler {
	return &TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		orders:     orders,
		locks:      locks,
		actions:    actions,
		notifier:   notifier,
		audit:      audit,
		planner:    services.NewTransitionPlanner(services.NewConditionEvaluator()),
		gate:       services.NewApprovalGate(),
		metrics:    recorder,
		logger:     logger.With("component", "transition_engine"),
	}
}

// TransitionStatus lets automation actions drive the engine. The approval gate is
// bypassed and the change is recorded under changeType.
func (h *TransitionOrderCommandHandler) TransitionStatus(
	ctx context.Context,
	orderID kernel.UUID,
	newStatus, actor string,
	changeType history.ChangeType,
) error {
	command, err := NewTransitionOrderCommand(orderID, newStatus, actor, "", true)
	if err != nil {
		return err
	}
	_, err = h.Handle(ctx, command.WithChangeType(changeType))
	return err
}

// applied is what the locked phase hands to the follow-up phase.
type applied struct {
	snapshot *order.Snapshot
	target   *workflow.Step
	entry    history.Entry
}

func (h *TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	command TransitionOrderCommand,
) (TransitionResult, error) {
	if err := command.Validate(); err != nil {
		return TransitionResult{}, err
	}

	changeType := string(command.ChangeType())
	done, err := h.apply(ctx, command)
	if err != nil {
		outcome := "failed"
		if errors.Is(err, errs.ErrInvalidTransition) || errors.Is(err, errs.ErrApprovalRequired) {
			outcome = "rejected"
		}
		h.metrics.Transition(outcome, changeType)
		return TransitionResult{}, err
	}

	result := TransitionResult{
		Success:   true,
		OldStatus: done.entry.OldStatus,
		NewStatus: done.entry.NewStatus,
	}

	if done.target != nil {
		ec := ExecutionContext{
			OrderID: command.OrderID(),
			Source:  history.Workflow,
			Actor:   command.ChangedBy(),
		}
		for _, outcome := range h.actions.ExecuteAll(ctx, ec, done.target.Actions()) {
			if !outcome.Success {
				result.Errors = append(result.Errors, outcome.Action+": "+outcome.Error)
			}
		}
		h.notify(ctx, done)
	}

	h.audit.RecordTransition(ctx, done.entry, result.Errors)
	h.metrics.Transition("applied", changeType)
	h.logger.InfoContext(ctx, "order status changed",
		"order_id", command.OrderID().String(),
		"old_status", result.OldStatus,
		"new_status", result.NewStatus,
		"change_type", changeType,
		"action_errors", len(result.Errors),
	)
	return result, nil
}

// apply runs the part of a transition that holds the order's lock: the checks, the
// status write and the history append.
func (h *TransitionOrderCommandHandler) apply(ctx context.Context, command TransitionOrderCommand) (applied, error) {
	unlock := h.locks.Lock(command.OrderID().String())
	defer unlock()

	snapshot, err := h.orders.Get(ctx, command.OrderID())
	if err != nil {
		return applied{}, err
	}

	uow := h.uowFactory.Create()
	wf, err := lookup.OrderWorkflow(ctx, uow, command.OrderID())
	if err != nil {
		return applied{}, err
	}

	var workflowID, stepID *kernel.UUID
	var target *workflow.Step
	if wf != nil {
		id := wf.ID()
		workflowID = &id

		target, err = h.plan(ctx, uow, wf, snapshot, command)
		if err != nil {
			return applied{}, err
		}
		sid := target.ID()
		stepID = &sid
	}

	if err = h.orders.UpdateStatus(ctx, command.OrderID(), command.NewStatus()); err != nil {
		return applied{}, err
	}

	entry, err := history.NewEntry(
		command.OrderID(),
		workflowID,
		stepID,
		snapshot.OrderStatus(),
		command.NewStatus(),
		command.ChangedBy(),
		command.ChangeType(),
		command.Notes(),
	)
	if err != nil {
		return applied{}, err
	}
	if err = h.audit.AppendHistory(ctx, entry); err != nil {
		return applied{}, err
	}

	return applied{snapshot: snapshot, target: target, entry: entry}, nil
}

// plan finds the target step and checks its approval gate.
func (h *TransitionOrderCommandHandler) plan(
	ctx context.Context,
	uow UoW,
	wf *workflow.Workflow,
	snapshot *order.Snapshot,
	command TransitionOrderCommand,
) (*workflow.Step, error) {
	steps, err := uow.StepRepository().ListByWorkflow(ctx, wf.ID())
	if err != nil {
		return nil, err
	}

	facts, err := lookup.Facts(ctx, uow, snapshot, lookup.StepConditions(steps))
	if err != nil {
		return nil, err
	}

	p, err := h.planner.PlanTransition(steps, facts, command.NewStatus())
	if err != nil {
		return nil, err
	}

	target := p.Target
	if !target.RequiresApproval() || command.SkipApproval() {
		return target, nil
	}

	approvals, err := uow.ApprovalRepository().ListByOrderStep(ctx, command.OrderID(), target.ID())
	if err != nil {
		return nil, err
	}
	if !h.gate.IsSatisfied(approvals) {
		return nil, errs.NewApprovalRequiredError(
			command.OrderID().String(),
			target.ID().String(),
			target.ApprovalRole(),
		)
	}
	return target, nil
}

func (h *TransitionOrderCommandHandler) notify(ctx context.Context, done applied) {
	for _, n := range done.target.Notifications() {
		recipient := n.Recipient
		if recipient == workflow.RecipientCustomer {
			recipient = done.snapshot.CustomerEmail()
		}

		data := map[string]any{
			"order_id":   done.entry.OrderID.String(),
			"old_status": done.entry.OldStatus,
			"new_status": done.entry.NewStatus,
		}
		for k, v := range n.Data {
			data[k] = v
		}

		if err := h.notifier.Send(ctx, recipient, n.Template, data); err != nil {
			h.logger.WarnContext(ctx, "notification not sent",
				"order_id", done.entry.OrderID.String(),
				"template", n.Template,
				"error", err,
			)
		}
	}
}
