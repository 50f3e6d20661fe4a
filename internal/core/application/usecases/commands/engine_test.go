package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"orderflow/internal/core/application/audit"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/keylock"

	"github.com/stretchr/testify/require"
)

// engine wires the transition engine, the approval gate and the automation engine
// over a world the same way the composition root does. Approval events are
// delivered synchronously.
type engine struct {
	w          *world
	transition *commands.TransitionOrderCommandHandler
	request    commands.RequestApprovalCommandHandler
	resolve    commands.ResolveApprovalCommandHandler
	trigger    commands.ProcessTriggerCommandHandler
	executor   *commands.ActionExecutor
	publisher  *syncPublisher
}

type syncPublisher struct {
	mu      sync.Mutex
	events  []approval.ResolvedEvent
	errs    []error
	consume func(context.Context, approval.ResolvedEvent) error
}

func (p *syncPublisher) PublishApprovalResolved(ctx context.Context, event approval.ResolvedEvent) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	consume := p.consume
	p.mu.Unlock()

	if consume == nil {
		return nil
	}
	if err := consume(ctx, event); err != nil {
		p.mu.Lock()
		p.errs = append(p.errs, err)
		p.mu.Unlock()
	}
	return nil
}

func (p *syncPublisher) published() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	w := newWorld()
	logger := discardLogger()
	locks := keylock.New()
	recorder := audit.NewRecorder(historyRepo{w}, logRepo{w}, auditSink{w}, time.Second, logger)

	var transition *commands.TransitionOrderCommandHandler
	executor := commands.NewActionExecutor(
		uowFactory{w},
		orderStore{w},
		notifier{w: w},
		inventory{w},
		commands.FuncStatusTransitioner(func(
			ctx context.Context,
			orderID kernel.UUID,
			newStatus, actor string,
			changeType history.ChangeType,
		) error {
			return transition.TransitionStatus(ctx, orderID, newStatus, actor, changeType)
		}),
		nil,
		logger,
	)
	transition = commands.NewTransitionOrderCommandHandler(
		uowFactory{w}, orderStore{w}, locks, executor, notifier{w: w}, recorder, nil, logger,
	)

	publisher := &syncPublisher{}
	consumer := commands.NewApprovalResolvedHandler(approvalUoWFactory{w}, transition, logger)
	publisher.consume = consumer.Handle

	return &engine{
		w:          w,
		transition: transition,
		request:    commands.NewRequestApprovalCommandHandler(approvalUoWFactory{w}, orderStore{w}, logger),
		resolve:    commands.NewResolveApprovalCommandHandler(approvalUoWFactory{w}, locks, publisher, nil, logger),
		trigger:    commands.NewProcessTriggerCommandHandler(uowFactory{w}, orderStore{w}, executor, recorder, nil, logger),
		executor:   executor,
		publisher:  publisher,
	}
}

func (e *engine) newOrder(t *testing.T, status string, total float64) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	e.w.addOrder(order.SnapshotParams{
		ID:             id,
		OrderStatus:    status,
		PaymentStatus:  "paid",
		ShippingStatus: "not_shipped",
		TotalAmount:    total,
		CustomerEmail:  "buyer@example.com",
		CreatedAt:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	return id
}

// addWorkflow stores a workflow with the given steps and returns the step ids by
// status name.
func (e *engine) addWorkflow(t *testing.T, isDefault bool, defs ...workflow.StepDefinition) (kernel.UUID, map[string]kernel.UUID) {
	t.Helper()
	ctx := t.Context()
	wf, err := workflow.RestoreWorkflow(kernel.NewUUID(), "Standard", "", isDefault, true, nil)
	require.NoError(t, err)
	require.NoError(t, workflowRepo{e.w}.Add(ctx, wf))

	ids := make(map[string]kernel.UUID, len(defs))
	for _, d := range defs {
		s, err := workflow.NewStep(kernel.NewUUID(), wf.ID(), d)
		require.NoError(t, err)
		require.NoError(t, stepRepo{e.w}.Add(ctx, s))
		ids[d.StatusName] = s.ID()
	}
	return wf.ID(), ids
}

// standardWorkflow is pending -> processing (approval) -> shipped.
func (e *engine) standardWorkflow(t *testing.T) map[string]kernel.UUID {
	t.Helper()
	_, ids := e.addWorkflow(t, true,
		workflow.StepDefinition{StepOrder: 1, StatusName: "pending"},
		workflow.StepDefinition{StepOrder: 2, StatusName: "processing", RequiresApproval: true, ApprovalRole: "manager"},
		workflow.StepDefinition{StepOrder: 3, StatusName: "shipped"},
	)
	return ids
}

func (e *engine) move(t *testing.T, orderID kernel.UUID, status string) (commands.TransitionResult, error) {
	t.Helper()
	cmd, err := commands.NewTransitionOrderCommand(orderID, status, "u-1", "", false)
	require.NoError(t, err)
	return e.transition.Handle(t.Context(), cmd)
}

func (e *engine) requestApproval(t *testing.T, orderID, stepID kernel.UUID) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewRequestApprovalCommand(id, orderID, stepID, "manager-1", "manager")
	require.NoError(t, err)
	require.NoError(t, e.request.Handle(t.Context(), cmd))
	return id
}

func (e *engine) resolveApproval(t *testing.T, approvalID kernel.UUID, decision approval.Status) (commands.ResolveApprovalResult, error) {
	t.Helper()
	cmd, err := commands.NewResolveApprovalCommand(approvalID, "manager-1", decision, "")
	require.NoError(t, err)
	return e.resolve.Handle(t.Context(), cmd)
}
