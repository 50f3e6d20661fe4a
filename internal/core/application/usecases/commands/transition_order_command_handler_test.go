package commands_test

import (
	"errors"
	"sync"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/condition"
	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionOrderCommandHandler_StandardScenario(t *testing.T) {
	e := newEngine(t)
	steps := e.standardWorkflow(t)
	orderID := e.newOrder(t, "pending", 80)

	_, err := e.move(t, orderID, "shipped")
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = e.move(t, orderID, "processing")
	require.ErrorIs(t, err, errs.ErrApprovalRequired)
	var approvalErr *errs.ApprovalRequiredError
	require.ErrorAs(t, err, &approvalErr)
	assert.Equal(t, "manager", approvalErr.Role)

	assert.Equal(t, "pending", e.w.status(orderID))
	assert.Empty(t, e.w.historyOf(orderID))

	approvalID := e.requestApproval(t, orderID, steps["processing"])
	result, err := e.resolveApproval(t, approvalID, approval.Approved)
	require.NoError(t, err)
	assert.True(t, result.GateSatisfied)

	assert.Equal(t, "processing", e.w.status(orderID))
	rows := e.w.historyOf(orderID)
	require.Len(t, rows, 1)
	assert.Equal(t, history.Automated, rows[0].ChangeType)
	assert.Equal(t, "pending", rows[0].OldStatus)
	assert.Equal(t, "processing", rows[0].NewStatus)
	assert.Equal(t, commands.AutoTransitionNotes, rows[0].Notes)
	assert.Equal(t, "manager-1", rows[0].ChangedBy)
	require.NotNil(t, rows[0].StepID)
	assert.Equal(t, steps["processing"], *rows[0].StepID)

	moved, err := e.move(t, orderID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, "processing", moved.OldStatus)
	assert.Equal(t, "shipped", moved.NewStatus)
	assert.Len(t, e.w.historyOf(orderID), 2)
}

func TestTransitionOrderCommandHandler_NeverMovesBackwards(t *testing.T) {
	e := newEngine(t)
	e.addWorkflow(t, true,
		workflow.StepDefinition{StepOrder: 1, StatusName: "pending"},
		workflow.StepDefinition{StepOrder: 2, StatusName: "processing"},
		workflow.StepDefinition{StepOrder: 3, StatusName: "shipped"},
	)
	orderID := e.newOrder(t, "processing", 10)

	for _, status := range []string{"pending", "processing", "cancelled"} {
		_, err := e.move(t, orderID, status)
		require.ErrorIs(t, err, errs.ErrInvalidTransition, status)
	}

	_, err := e.move(t, orderID, "shipped")
	require.NoError(t, err)
}

func TestTransitionOrderCommandHandler_StepConditions(t *testing.T) {
	e := newEngine(t)
	bigOrder, err := condition.New(condition.TypeTotalAmount, condition.GreaterOrEqual, kernel.Number(100))
	require.NoError(t, err)
	e.addWorkflow(t, true,
		workflow.StepDefinition{StepOrder: 1, StatusName: "pending"},
		workflow.StepDefinition{StepOrder: 2, StatusName: "review", Conditions: []condition.Condition{bigOrder}},
	)

	small := e.newOrder(t, "pending", 50)
	_, err = e.move(t, small, "review")
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	big := e.newOrder(t, "pending", 150)
	_, err = e.move(t, big, "review")
	require.NoError(t, err)
}

func TestTransitionOrderCommandHandler_OrdersOutsideWorkflowsMoveFreely(t *testing.T) {
	e := newEngine(t)
	orderID := e.newOrder(t, "pending", 10)

	result, err := e.move(t, orderID, "anything-goes")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "anything-goes", e.w.status(orderID))

	rows := e.w.historyOf(orderID)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].WorkflowID)
	assert.Nil(t, rows[0].StepID)
	assert.Equal(t, history.Manual, rows[0].ChangeType)
}

func TestTransitionOrderCommandHandler_AssignmentWinsOverDefault(t *testing.T) {
	e := newEngine(t)
	e.standardWorkflow(t)
	express, _ := e.addWorkflow(t, false,
		workflow.StepDefinition{StepOrder: 1, StatusName: "pending"},
		workflow.StepDefinition{StepOrder: 2, StatusName: "shipped"},
	)
	orderID := e.newOrder(t, "pending", 10)

	cmd, err := commands.NewAssignWorkflowCommand(orderID, express)
	require.NoError(t, err)
	require.NoError(t, commands.NewAssignWorkflowCommandHandler(workflowUoWFactory{e.w}, orderStore{e.w}).Handle(t.Context(), cmd))

	_, err = e.move(t, orderID, "shipped")
	require.NoError(t, err)
	rows := e.w.historyOf(orderID)
	require.Len(t, rows, 1)
	assert.Equal(t, express, *rows[0].WorkflowID)
}

func TestTransitionOrderCommandHandler_SkipApproval(t *testing.T) {
	e := newEngine(t)
	e.standardWorkflow(t)
	orderID := e.newOrder(t, "pending", 10)

	cmd, err := commands.NewTransitionOrderCommand(orderID, "processing", "system", "", true)
	require.NoError(t, err)
	_, err = e.transition.Handle(t.Context(), cmd)
	require.NoError(t, err)

	rows := e.w.historyOf(orderID)
	require.Len(t, rows, 1)
	assert.Equal(t, history.Automated, rows[0].ChangeType)
}

func TestTransitionOrderCommandHandler_StepActionsAreAdvisory(t *testing.T) {
	e := newEngine(t)
	tagShipped, err := workflow.NewAction(workflow.ActionAddTag, map[string]kernel.Value{"tag_name": kernel.String("shipped")})
	require.NoError(t, err)
	bogus, err := workflow.NewAction("teleport", nil)
	require.NoError(t, err)
	e.addWorkflow(t, true,
		workflow.StepDefinition{StepOrder: 1, StatusName: "pending"},
		workflow.StepDefinition{
			StepOrder:  2,
			StatusName: "shipped",
			Actions:    []workflow.Action{bogus, tagShipped},
			Notifications: []workflow.Notification{
				{Recipient: workflow.RecipientCustomer, Template: "order_shipped", Data: map[string]string{"channel": "email"}},
			},
		},
	)
	orderID := e.newOrder(t, "pending", 10)

	result, err := e.move(t, orderID, "shipped")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"teleport: unknown action type: teleport"}, result.Errors)
	assert.Equal(t, []string{"shipped"}, e.w.tagNames(orderID))

	require.Len(t, e.w.sent, 1)
	assert.Equal(t, "buyer@example.com", e.w.sent[0].Recipient)
	assert.Equal(t, "order_shipped", e.w.sent[0].Template)
	assert.Equal(t, "email", e.w.sent[0].Data["channel"])
	assert.Equal(t, "shipped", e.w.sent[0].Data["new_status"])

	assert.Contains(t, e.w.audit, "order.status_changed")
}

func TestTransitionOrderCommandHandler_StepActionMovesStatusAgain(t *testing.T) {
	e := newEngine(t)
	toShipped, err := workflow.NewAction(workflow.ActionUpdateStatus, map[string]kernel.Value{"status": kernel.String("shipped")})
	require.NoError(t, err)
	e.addWorkflow(t, true,
		workflow.StepDefinition{StepOrder: 1, StatusName: "pending"},
		workflow.StepDefinition{StepOrder: 2, StatusName: "packed", Actions: []workflow.Action{toShipped}},
		workflow.StepDefinition{StepOrder: 3, StatusName: "shipped"},
	)
	orderID := e.newOrder(t, "pending", 10)

	result, err := e.move(t, orderID, "packed")
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "shipped", e.w.status(orderID))

	rows := e.w.historyOf(orderID)
	require.Len(t, rows, 2)
	assert.Equal(t, history.Manual, rows[0].ChangeType)
	assert.Equal(t, history.Workflow, rows[1].ChangeType)
	assert.Equal(t, "packed", rows[1].OldStatus)
}

func TestTransitionOrderCommandHandler_StatusWriteFailureAborts(t *testing.T) {
	e := newEngine(t)
	orderID := e.newOrder(t, "pending", 10)
	e.w.statusWriteErr = errs.NewStoreUnavailableError("update order status", errors.New("connection refused"))

	_, err := e.move(t, orderID, "processing")
	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	assert.Empty(t, e.w.historyOf(orderID))
}

func TestTransitionOrderCommandHandler_UnknownOrder(t *testing.T) {
	e := newEngine(t)

	_, err := e.move(t, kernel.NewUUID(), "processing")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionOrderCommandHandler_OneTransitionPerOrderAtATime(t *testing.T) {
	e := newEngine(t)
	e.addWorkflow(t, true,
		workflow.StepDefinition{StepOrder: 1, StatusName: "pending"},
		workflow.StepDefinition{StepOrder: 2, StatusName: "processing"},
	)
	orderID := e.newOrder(t, "pending", 10)

	const callers = 8
	var wg sync.WaitGroup
	results := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, _ := commands.NewTransitionOrderCommand(orderID, "processing", "u-1", "", false)
			_, err := e.transition.Handle(t.Context(), cmd)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok int
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	}
	assert.Equal(t, 1, ok)
	assert.Len(t, e.w.historyOf(orderID), 1)
}

func TestTransitionOrderCommandHandler_NotConstructed(t *testing.T) {
	e := newEngine(t)

	_, err := e.transition.Handle(t.Context(), commands.TransitionOrderCommand{})
	require.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
}
