package automation_test

import (
	"encoding/json"
	"testing"

	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/condition"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func highValueParams() automation.RuleParams {
	return automation.RuleParams{
		ID:   kernel.NewUUID(),
		Name: "Tag high value orders",
		TriggerConditions: []automation.TriggerCondition{
			{
				Event:     automation.EventOrderCreated,
				Condition: condition.Condition{Type: condition.TypeTotalAmount, Operator: condition.GreaterOrEqual, Value: kernel.Number(100)},
			},
		},
		Actions: []workflow.Action{
			{Type: workflow.ActionAddTag, Params: map[string]kernel.Value{"tag_name": kernel.String("high-value")}},
		},
		Priority: 10,
		IsActive: true,
	}
}

func TestNewRule(t *testing.T) {
	t.Run("should create rule", func(t *testing.T) {
		p := highValueParams()

		r, err := automation.NewRule(p)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, "Tag high value orders", r.Name())
		assert.Equal(t, 10, r.Priority())
		assert.True(t, r.IsActive())
		assert.True(t, r.ListensTo(automation.EventOrderCreated))
		assert.False(t, r.ListensTo(automation.EventScheduled))
		assert.Len(t, r.Conditions(), 1)
		assert.Len(t, r.Actions(), 1)
	})

	t.Run("should reject missing name and event", func(t *testing.T) {
		p := highValueParams()
		p.Name = ""
		p.TriggerConditions[0].Event = ""

		_, err := automation.NewRule(p)

		require.ErrorIs(t, err, automation.ErrRuleNameIsRequired)
		assert.Contains(t, err.Error(), "trigger event")
	})

	t.Run("event-only trigger is valid", func(t *testing.T) {
		p := highValueParams()
		p.TriggerConditions = []automation.TriggerCondition{{Event: automation.EventOrderPaid}}

		_, err := automation.NewRule(p)

		require.NoError(t, err)
	})
}

func TestRule_Update(t *testing.T) {
	r, err := automation.NewRule(highValueParams())
	require.NoError(t, err)
	id := r.ID()

	p := highValueParams()
	p.Name = "Renamed"
	p.Priority = 1
	p.IsActive = false
	require.NoError(t, r.Update(p))

	assert.True(t, r.ID().IsEqual(id))
	assert.Equal(t, "Renamed", r.Name())
	assert.Equal(t, 1, r.Priority())
	assert.False(t, r.IsActive())

	p.Actions = []workflow.Action{{}}
	require.ErrorIs(t, r.Update(p), errs.ErrValueIsRequired)
	assert.Len(t, r.Actions(), 1)
	assert.Equal(t, workflow.ActionAddTag, r.Actions()[0].Type)
}

func TestSortByPriority(t *testing.T) {
	mk := func(priority int) *automation.Rule {
		p := highValueParams()
		p.Priority = priority
		r, err := automation.NewRule(p)
		require.NoError(t, err)
		return r
	}
	r10, r5, r5b := mk(10), mk(5), mk(5)
	first, second := r5, r5b
	if r5b.ID().Less(r5.ID()) {
		first, second = r5b, r5
	}

	rules := []*automation.Rule{r10, r5, r5b}
	automation.SortByPriority(rules)

	assert.Same(t, first, rules[0])
	assert.Same(t, second, rules[1])
	assert.Same(t, r10, rules[2])
}

func TestTriggerCondition_JSON(t *testing.T) {
	var tc automation.TriggerCondition

	err := json.Unmarshal([]byte(`{"event":"order_created","type":"total_amount","operator":">=","value":100}`), &tc)

	require.NoError(t, err)
	assert.Equal(t, automation.EventOrderCreated, tc.Event)
	assert.Equal(t, condition.TypeTotalAmount, tc.Type)
	assert.Equal(t, condition.GreaterOrEqual, tc.Operator)
	n, ok := tc.Value.Number()
	require.True(t, ok)
	assert.InDelta(t, 100.0, n, 1e-9)
}
