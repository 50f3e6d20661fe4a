package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// DefaultScheduledTriggerSpec fires every five minutes.
const DefaultScheduledTriggerSpec = "0 */5 * * * *"

// OpenOrders lists the orders that may still change.
type OpenOrders interface {
	ListOpenIDs(ctx context.Context, excluded []string) ([]kernel.UUID, error)
}

// TriggerProcessor runs the automation rules for one trigger event.
type TriggerProcessor interface {
	Handle(ctx context.Context, command commands.ProcessTriggerCommand) (commands.ProcessTriggerResult, error)
}

// ScheduledTriggerJob raises the "scheduled" trigger event for every order whose
// status is not terminal. A run that is still going when the next one is due
// makes the next one skip.
type ScheduledTriggerJob struct {
	orders   OpenOrders
	trigger  TriggerProcessor
	spec     string
	terminal []string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewScheduledTriggerJob(
	orders OpenOrders,
	trigger TriggerProcessor,
	spec string,
	terminalStatuses []string,
	logger *slog.Logger,
) *ScheduledTriggerJob {
	if spec == "" {
		spec = DefaultScheduledTriggerSpec
	}
	return &ScheduledTriggerJob{
		orders:   orders,
		trigger:  trigger,
		spec:     spec,
		terminal: append([]string(nil), terminalStatuses...),
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "scheduled_trigger_job"),
	}
}

func (j *ScheduledTriggerJob) Name() string {
	return "scheduled trigger"
}

func (j *ScheduledTriggerJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Scheduled trigger job started", "spec", j.spec)
	return nil
}

// Stop waits for a running pass to finish.
func (j *ScheduledTriggerJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Scheduled trigger job stopped")
}

// RunOnce processes every open order once. A failing order is logged and the
// pass goes on.
func (j *ScheduledTriggerJob) RunOnce(ctx context.Context) {
	ids, err := j.orders.ListOpenIDs(ctx, j.terminal)
	if err != nil {
		j.logger.ErrorContext(ctx, "listing open orders failed", "error", err)
		return
	}

	matched := 0
	for _, id := range ids {
		cmd, err := commands.NewProcessTriggerCommand(id, automation.EventScheduled)
		if err != nil {
			j.logger.ErrorContext(ctx, "building scheduled trigger failed", "order_id", id.String(), "error", err)
			continue
		}

		result, err := j.trigger.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "scheduled trigger failed", "order_id", id.String(), "error", err)
			continue
		}
		matched += result.RulesMatched
	}

	j.logger.DebugContext(ctx, "scheduled trigger pass finished", "orders", len(ids), "rules_matched", matched)
}
