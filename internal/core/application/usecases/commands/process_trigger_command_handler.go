package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/lookup"
	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/metrics"
)

// ProcessTriggerResult lists the automation log rows written for the event.
type ProcessTriggerResult struct {
	RulesMatched int
	Logs         []automation.Log
}

// ProcessTriggerCommandHandler is the automation engine.
//
// Active rules listening to the event run in priority order, lowest number first,
// ties by id. Each rule is matched against a fresh read of the order, so a rule
// sees the effects of the rules that ran before it. Action failures are recorded
// in the rule's log row and never stop the remaining actions or rules; a failed
// order read aborts the whole trigger.
type ProcessTriggerCommandHandler struct {
	uowFactory UoWFactory
	orders     ports.OrderStore
	actions    ActionRunner
	audit      AuditRecorder
	evaluator  services.ConditionEvaluator
	metrics    *metrics.Recorder
	logger     *slog.Logger
}

func NewProcessTriggerCommandHandler(
	uowFactory UoWFactory,
	orders ports.OrderStore,
	actions ActionRunner,
	audit AuditRecorder,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) ProcessTriggerCommandHandler {
	return ProcessTriggerCommandHandler{
		uowFactory: uowFactory,
		orders:     orders,
		actions:    actions,
		audit:      audit,
		evaluator:  services.NewConditionEvaluator(),
		metrics:    recorder,
		logger:     logger.With("component", "automation_engine"),
	}
}

func (h ProcessTriggerCommandHandler) Handle(
	ctx context.Context,
	command ProcessTriggerCommand,
) (ProcessTriggerResult, error) {
	if err := command.Validate(); err != nil {
		return ProcessTriggerResult{}, err
	}

	if _, err := h.orders.Get(ctx, command.OrderID()); err != nil {
		return ProcessTriggerResult{}, err
	}

	uow := h.uowFactory.Create()
	rules, err := uow.RuleRepository().List(ctx, true)
	if err != nil {
		return ProcessTriggerResult{}, err
	}
	automation.SortByPriority(rules)

	var result ProcessTriggerResult
	for _, rule := range rules {
		if !rule.ListensTo(command.Event()) {
			continue
		}

		matched, err := h.matches(ctx, uow, rule, command)
		if err != nil {
			log := automation.NewAbortedLog(rule.ID(), command.OrderID(), command.Event(), err)
			h.record(ctx, log)
			result.Logs = append(result.Logs, log)
			return result, err
		}
		if !matched {
			continue
		}

		result.RulesMatched++
		ec := ExecutionContext{OrderID: command.OrderID(), Source: history.Automated}
		outcomes := h.actions.ExecuteAll(ctx, ec, rule.Actions())

		log := automation.NewLog(rule.ID(), command.OrderID(), command.Event(), outcomes)
		h.record(ctx, log)
		result.Logs = append(result.Logs, log)
	}

	return result, nil
}

func (h ProcessTriggerCommandHandler) matches(
	ctx context.Context,
	uow UoW,
	rule *automation.Rule,
	command ProcessTriggerCommand,
) (bool, error) {
	snapshot, err := h.orders.Get(ctx, command.OrderID())
	if err != nil {
		return false, err
	}

	conditions := rule.Conditions()
	facts, err := lookup.Facts(ctx, uow, snapshot, conditions)
	if err != nil {
		return false, err
	}
	return h.evaluator.EvaluateTriggerConditions(facts, conditions), nil
}

func (h ProcessTriggerCommandHandler) record(ctx context.Context, log automation.Log) {
	h.metrics.RuleExecuted(log.TriggerEvent, string(log.Result))
	if err := h.audit.RecordRuleExecution(ctx, log); err != nil {
		h.logger.ErrorContext(ctx, "automation log not written",
			"rule_id", log.RuleID.String(),
			"order_id", log.OrderID.String(),
			"error", err,
		)
		return
	}
	h.logger.InfoContext(ctx, "automation rule executed",
		"rule_id", log.RuleID.String(),
		"order_id", log.OrderID.String(),
		"event", log.TriggerEvent,
		"result", string(log.Result),
	)
}
