package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func action(t *testing.T, actionType string, params map[string]kernel.Value) workflow.Action {
	t.Helper()
	a, err := workflow.NewAction(actionType, params)
	require.NoError(t, err)
	return a
}

func TestActionExecutor_Actions(t *testing.T) {
	e := newEngine(t)
	orderID := e.newOrder(t, "pending", 10)
	express, _ := e.addWorkflow(t, false, workflow.StepDefinition{StepOrder: 1, StatusName: "pending"})
	ec := commands.ExecutionContext{OrderID: orderID, Source: history.Automated}

	outcomes := e.executor.ExecuteAll(t.Context(), ec, []workflow.Action{
		action(t, workflow.ActionAssignPriority, map[string]kernel.Value{"priority": kernel.Number(3)}),
		action(t, workflow.ActionUpdateCustomField, map[string]kernel.Value{
			"field": kernel.String("gift_wrap"),
			"value": kernel.Bool(true),
		}),
		action(t, workflow.ActionCreateFulfillment, map[string]kernel.Value{
			"carrier":         kernel.String("DHL"),
			"tracking_number": kernel.String("JD014600"),
		}),
		action(t, workflow.ActionAllocateInventory, nil),
		action(t, workflow.ActionAssignWorkflow, map[string]kernel.Value{"workflow_id": kernel.String(express.String())}),
		action(t, workflow.ActionSendNotification, map[string]kernel.Value{
			"template": kernel.String("order_received"),
			"coupon":   kernel.String("WELCOME10"),
		}),
	})

	for _, o := range outcomes {
		assert.True(t, o.Success, "%s: %s", o.Action, o.Error)
	}
	assert.Equal(t, 3, e.w.priorities[orderID])
	assert.Equal(t, "true", e.w.customFields[orderID]["gift_wrap"])
	require.Len(t, e.w.fulfillments, 1)
	assert.Equal(t, "DHL", e.w.fulfillments[0].Carrier)
	assert.Equal(t, "JD014600", e.w.fulfillments[0].TrackingNumber)
	assert.Equal(t, []kernel.UUID{orderID}, e.w.allocated)
	assert.Equal(t, express, e.w.assignments[orderID].WorkflowID)

	require.Len(t, e.w.sent, 1)
	assert.Equal(t, "buyer@example.com", e.w.sent[0].Recipient)
	assert.Equal(t, "order_received", e.w.sent[0].Template)
	assert.Equal(t, "WELCOME10", e.w.sent[0].Data["coupon"])
	assert.NotContains(t, e.w.sent[0].Data, "template")
}

func TestActionExecutor_Failures(t *testing.T) {
	e := newEngine(t)
	orderID := e.newOrder(t, "pending", 10)
	ec := commands.ExecutionContext{OrderID: orderID, Source: history.Automated}

	tests := []struct {
		name   string
		action workflow.Action
		want   string
	}{
		{
			name:   "unknown type",
			action: action(t, "teleport", nil),
			want:   "unknown action type: teleport",
		},
		{
			name:   "fractional priority",
			action: action(t, workflow.ActionAssignPriority, map[string]kernel.Value{"priority": kernel.Number(1.5)}),
		},
		{
			name:   "tag without name",
			action: action(t, workflow.ActionAddTag, nil),
		},
		{
			name:   "notification without template",
			action: action(t, workflow.ActionSendNotification, map[string]kernel.Value{"recipient": kernel.String("ops@example.com")}),
		},
		{
			name:   "unknown workflow",
			action: action(t, workflow.ActionAssignWorkflow, map[string]kernel.Value{"workflow_id": kernel.String(kernel.NewUUID().String())}),
		},
		{
			name:   "status without target",
			action: action(t, workflow.ActionUpdateStatus, nil),
		},
		{
			name:   "custom field without key",
			action: action(t, workflow.ActionUpdateCustomField, map[string]kernel.Value{"value": kernel.String("x")}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.executor.Execute(t.Context(), ec, tt.action)
			require.ErrorIs(t, err, errs.ErrActionExecution)
			var execErr *errs.ActionExecutionError
			require.ErrorAs(t, err, &execErr)
			assert.Equal(t, tt.action.Type, execErr.ActionType)
			if tt.want != "" {
				assert.EqualError(t, execErr.Cause, tt.want)
			}
		})
	}
}

func TestActionExecutor_ExecuteAllKeepsGoing(t *testing.T) {
	e := newEngine(t)
	orderID := e.newOrder(t, "pending", 10)
	ec := commands.ExecutionContext{OrderID: orderID, Source: history.Automated}

	outcomes := e.executor.ExecuteAll(t.Context(), ec, []workflow.Action{
		action(t, "teleport", nil),
		action(t, workflow.ActionAddTag, map[string]kernel.Value{"tag": kernel.String("vip")}),
		action(t, workflow.ActionAddTag, map[string]kernel.Value{"tag": kernel.String("vip")}),
	})

	require.Len(t, outcomes, 3)
	assert.False(t, outcomes[0].Success)
	assert.Equal(t, "unknown action type: teleport", outcomes[0].Error)
	assert.True(t, outcomes[1].Success)
	assert.True(t, outcomes[2].Success)
	assert.Equal(t, []string{"vip"}, e.w.tagNames(orderID))
}
