// Package audit records what the workflow engine did: the status history, the
// automation log and the events forwarded to the external audit sink.
package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// Audit sink event names.
const (
	EventStatusChanged = "order.status_changed"
	EventRuleExecuted  = "automation.rule_executed"
)

// DefaultHistoryRetry bounds how long a failing history append is retried.
const DefaultHistoryRetry = 30 * time.Second

// Recorder writes audit records. History appends are retried because the status
// they describe is already written; sink failures are logged and dropped.
type Recorder struct {
	history    ports.HistoryRepository
	logs       ports.AutomationLogRepository
	sink       ports.AuditSink
	newBackOff func() backoff.BackOff
	logger     *slog.Logger
}

// NewRecorder builds a recorder retrying history appends with exponential backoff
// for at most maxRetry. A non-positive maxRetry selects DefaultHistoryRetry.
func NewRecorder(
	historyRepo ports.HistoryRepository,
	logRepo ports.AutomationLogRepository,
	sink ports.AuditSink,
	maxRetry time.Duration,
	logger *slog.Logger,
) *Recorder {
	if maxRetry <= 0 {
		maxRetry = DefaultHistoryRetry
	}
	newBackOff := func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 50 * time.Millisecond
		b.MaxElapsedTime = maxRetry
		return b
	}
	return &Recorder{
		history:    historyRepo,
		logs:       logRepo,
		sink:       sink,
		newBackOff: newBackOff,
		logger:     logger.With("component", "audit"),
	}
}

// WithBackOff returns a copy using policies built by newBackOff.
func (r *Recorder) WithBackOff(newBackOff func() backoff.BackOff) *Recorder {
	c := *r
	c.newBackOff = newBackOff
	return &c
}

// AppendHistory stores entry. Store outages are retried until the backoff gives
// up; other errors fail at once. The caller's cancellation does not interrupt the
// retries.
func (r *Recorder) AppendHistory(ctx context.Context, entry history.Entry) error {
	ctx = context.WithoutCancel(ctx)

	op := func() error {
		err := r.history.Append(ctx, entry)
		if err != nil && !errors.Is(err, errs.ErrStoreUnavailable) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		r.logger.WarnContext(ctx, "status history append failed, retrying",
			"order_id", entry.OrderID.String(),
			"retry_in", wait,
			"error", err,
		)
	}

	if err := backoff.RetryNotify(op, r.newBackOff(), notify); err != nil {
		r.logger.ErrorContext(ctx, "status history append abandoned",
			"order_id", entry.OrderID.String(),
			"old_status", entry.OldStatus,
			"new_status", entry.NewStatus,
			"error", err,
		)
		if errors.Is(err, errs.ErrStoreUnavailable) {
			return err
		}
		return errs.NewStoreUnavailableError("append status history", err)
	}
	return nil
}

func (r *Recorder) RecordTransition(ctx context.Context, entry history.Entry, actionErrors []string) {
	payload := map[string]any{
		"history_id":  entry.ID.String(),
		"order_id":    entry.OrderID.String(),
		"old_status":  entry.OldStatus,
		"new_status":  entry.NewStatus,
		"changed_by":  entry.ChangedBy,
		"change_type": string(entry.ChangeType),
		"notes":       entry.Notes,
	}
	if entry.WorkflowID != nil {
		payload["workflow_id"] = entry.WorkflowID.String()
	}
	if entry.StepID != nil {
		payload["step_id"] = entry.StepID.String()
	}
	if len(actionErrors) > 0 {
		payload["action_errors"] = actionErrors
	}
	r.forward(ctx, EventStatusChanged, payload)
}

func (r *Recorder) RecordRuleExecution(ctx context.Context, log automation.Log) error {
	if err := r.logs.Append(ctx, log); err != nil {
		return err
	}

	payload := map[string]any{
		"log_id":           log.ID.String(),
		"rule_id":          log.RuleID.String(),
		"order_id":         log.OrderID.String(),
		"trigger_event":    log.TriggerEvent,
		"execution_result": string(log.Result),
	}
	if log.ErrorMessage != "" {
		payload["error_message"] = log.ErrorMessage
	}
	r.forward(ctx, EventRuleExecuted, payload)
	return nil
}

func (r *Recorder) forward(ctx context.Context, event string, payload map[string]any) {
	if err := r.sink.Append(ctx, event, payload); err != nil {
		r.logger.WarnContext(ctx, "audit event dropped", "event", event, "error", err)
	}
}
