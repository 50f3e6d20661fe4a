package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/fulfillment"
	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/metrics"
)

// ExecutionContext tells an action which order it runs for and on whose behalf.
// Source is the change type recorded when an action moves the order's status:
// history.Workflow for step actions, history.Automated for rule actions.
type ExecutionContext struct {
	OrderID kernel.UUID
	Source  history.ChangeType
	Actor   string
}

// StatusTransitioner moves an order through the transition engine, bypassing the
// approval gate.
type StatusTransitioner interface {
	TransitionStatus(ctx context.Context, orderID kernel.UUID, newStatus, actor string, changeType history.ChangeType) error
}

// FuncStatusTransitioner adapts a function to StatusTransitioner. The composition
// root uses it to hand the transition handler to the executor the handler itself
// depends on.
type FuncStatusTransitioner func(
	ctx context.Context,
	orderID kernel.UUID,
	newStatus, actor string,
	changeType history.ChangeType,
) error

func (f FuncStatusTransitioner) TransitionStatus(
	ctx context.Context,
	orderID kernel.UUID,
	newStatus, actor string,
	changeType history.ChangeType,
) error {
	return f(ctx, orderID, newStatus, actor, changeType)
}

// ActionRunner runs action lists of steps and rules.
type ActionRunner interface {
	ExecuteAll(ctx context.Context, ec ExecutionContext, actions []workflow.Action) []automation.ActionOutcome
}

// ActionExecutor performs the side effects named by workflow and rule actions.
//
// Actions run one by one and independently: a failed action never stops the next
// one. Unknown action types fail with "unknown action type: X".
type ActionExecutor struct {
	uowFactory   UoWFactory
	orders       ports.OrderStore
	notifier     ports.Notifier
	inventory    ports.InventoryAllocator
	transitioner StatusTransitioner
	metrics      *metrics.Recorder
	logger       *slog.Logger
}

func NewActionExecutor(
	uowFactory UoWFactory,
	orders ports.OrderStore,
	notifier ports.Notifier,
	inventory ports.InventoryAllocator,
	transitioner StatusTransitioner,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) *ActionExecutor {
	return &ActionExecutor{
		uowFactory:   uowFactory,
		orders:       orders,
		notifier:     notifier,
		inventory:    inventory,
		transitioner: transitioner,
		metrics:      recorder,
		logger:       logger.With("component", "action_executor"),
	}
}

// Execute runs a single action. Failures are reported as ActionExecutionError.
func (e *ActionExecutor) Execute(ctx context.Context, ec ExecutionContext, action workflow.Action) error {
	if err := e.execute(ctx, ec, action); err != nil {
		return errs.NewActionExecutionError(action.Type, err)
	}
	return nil
}

// ExecuteAll runs every action in order and reports one outcome per action.
func (e *ActionExecutor) ExecuteAll(
	ctx context.Context,
	ec ExecutionContext,
	actions []workflow.Action,
) []automation.ActionOutcome {
	outcomes := make([]automation.ActionOutcome, 0, len(actions))
	for _, action := range actions {
		if err := e.execute(ctx, ec, action); err != nil {
			e.logger.WarnContext(ctx, "action failed",
				"order_id", ec.OrderID.String(),
				"action", action.Type,
				"error", err,
			)
			outcomes = append(outcomes, automation.Failed(action.Type, err))
			continue
		}
		outcomes = append(outcomes, automation.Succeeded(action.Type))
	}
	return outcomes
}

func (e *ActionExecutor) execute(ctx context.Context, ec ExecutionContext, action workflow.Action) error {
	var err error
	switch action.Type {
	case workflow.ActionUpdateStatus:
		err = e.updateStatus(ctx, ec, action)
	case workflow.ActionAssignWorkflow:
		err = e.assignWorkflow(ctx, ec, action)
	case workflow.ActionAssignPriority:
		err = e.assignPriority(ctx, ec, action)
	case workflow.ActionAddTag:
		err = e.addTag(ctx, ec, action)
	case workflow.ActionSendNotification:
		err = e.sendNotification(ctx, ec, action)
	case workflow.ActionCreateFulfillment:
		err = e.createFulfillment(ctx, ec, action)
	case workflow.ActionAllocateInventory:
		err = e.inventory.Allocate(ctx, ec.OrderID)
	case workflow.ActionUpdateCustomField:
		err = e.updateCustomField(ctx, ec, action)
	default:
		err = fmt.Errorf("unknown action type: %s", action.Type)
	}
	if err != nil {
		e.metrics.ActionFailed(action.Type)
	}
	return err
}

func (e *ActionExecutor) updateStatus(ctx context.Context, ec ExecutionContext, action workflow.Action) error {
	status := action.StringParam("status", "new_status")
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	return e.transitioner.TransitionStatus(ctx, ec.OrderID, status, ec.Actor, ec.Source)
}

func (e *ActionExecutor) assignWorkflow(ctx context.Context, ec ExecutionContext, action workflow.Action) error {
	raw := action.StringParam("workflow_id")
	if raw == "" {
		return errs.NewValueIsRequiredError("workflow_id")
	}
	workflowID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return err
	}

	uow := e.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = assignWorkflow(ctx, uow, ec.OrderID, workflowID); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (e *ActionExecutor) assignPriority(ctx context.Context, ec ExecutionContext, action workflow.Action) error {
	n, ok := action.Param("priority").Number()
	if !ok || n != math.Trunc(n) {
		return errs.NewValueIsInvalidError("priority")
	}
	return e.orders.UpdatePriority(ctx, ec.OrderID, int(n))
}

func (e *ActionExecutor) addTag(ctx context.Context, ec ExecutionContext, action workflow.Action) error {
	name := action.StringParam("tag_name", "tag")
	if name == "" {
		return errs.NewValueIsRequiredError("tag_name")
	}

	tags := e.uowFactory.Create().TagRepository()
	tagID, err := tags.GetOrCreate(ctx, name)
	if err != nil {
		return err
	}
	return tags.Attach(ctx, ec.OrderID, tagID)
}

func (e *ActionExecutor) sendNotification(ctx context.Context, ec ExecutionContext, action workflow.Action) error {
	template := action.StringParam("template", "template_key")
	if template == "" {
		return errs.NewValueIsRequiredError("template")
	}

	recipient := action.StringParam("recipient")
	if recipient == "" || recipient == workflow.RecipientCustomer {
		snapshot, err := e.orders.Get(ctx, ec.OrderID)
		if err != nil {
			return err
		}
		recipient = snapshot.CustomerEmail()
	}

	data := map[string]any{"order_id": ec.OrderID.String()}
	for _, key := range action.Keys() {
		switch key {
		case "recipient", "template", "template_key":
			continue
		}
		data[key] = action.Param(key).String()
	}
	return e.notifier.Send(ctx, recipient, template, data)
}

func (e *ActionExecutor) createFulfillment(ctx context.Context, ec ExecutionContext, action workflow.Action) error {
	f, err := fulfillment.NewFulfillment(
		ec.OrderID,
		action.StringParam("carrier"),
		action.StringParam("tracking_number"),
	)
	if err != nil {
		return err
	}
	return e.uowFactory.Create().FulfillmentRepository().Add(ctx, f)
}

func (e *ActionExecutor) updateCustomField(ctx context.Context, ec ExecutionContext, action workflow.Action) error {
	key := action.StringParam("field", "field_key", "key")
	if key == "" {
		return errs.NewValueIsRequiredError("field")
	}
	return e.orders.SetCustomField(ctx, ec.OrderID, key, action.Param("value").String())
}
