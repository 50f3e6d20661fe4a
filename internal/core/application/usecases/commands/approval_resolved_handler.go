package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/approval"
)

// AutoTransitionNotes is the history note of transitions made once an approval
// gate opened.
const AutoTransitionNotes = "auto-transitioned after approval"

// OrderTransitioner runs a transition command.
type OrderTransitioner interface {
	Handle(ctx context.Context, command TransitionOrderCommand) (TransitionResult, error)
}

// ApprovalResolvedHandler consumes approval.ResolvedEvent and moves the order into
// the approved step, bypassing the gate. The transition is recorded as automated.
type ApprovalResolvedHandler struct {
	uowFactory  ApprovalUoWFactory
	transitions OrderTransitioner
	logger      *slog.Logger
}

func NewApprovalResolvedHandler(
	uowFactory ApprovalUoWFactory,
	transitions OrderTransitioner,
	logger *slog.Logger,
) ApprovalResolvedHandler {
	return ApprovalResolvedHandler{
		uowFactory:  uowFactory,
		transitions: transitions,
		logger:      logger.With("component", "approval_resolved_handler"),
	}
}

func (h ApprovalResolvedHandler) Handle(ctx context.Context, event approval.ResolvedEvent) error {
	step, err := h.uowFactory.Create().StepRepository().Get(ctx, event.StepID)
	if err != nil {
		return err
	}

	command, err := NewTransitionOrderCommand(event.OrderID, step.StatusName(), event.ApproverID, AutoTransitionNotes, true)
	if err != nil {
		return err
	}

	result, err := h.transitions.Handle(ctx, command)
	if err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order auto-transitioned after approval",
		"order_id", event.OrderID.String(),
		"approval_id", event.ApprovalID.String(),
		"new_status", result.NewStatus,
	)
	return nil
}
