package workflow_test

import (
	"encoding/json"
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_UnmarshalJSON(t *testing.T) {
	t.Run("flat parameters", func(t *testing.T) {
		var a workflow.Action

		err := json.Unmarshal([]byte(`{"type":"add_tag","tag_name":"high-value"}`), &a)

		require.NoError(t, err)
		assert.Equal(t, workflow.ActionAddTag, a.Type)
		assert.Equal(t, "high-value", a.StringParam("tag_name"))
	})

	t.Run("nested params are merged", func(t *testing.T) {
		var a workflow.Action

		err := json.Unmarshal([]byte(`{"type":"assign_priority","params":{"priority":3}}`), &a)

		require.NoError(t, err)
		n, ok := a.Param("priority").Number()
		require.True(t, ok)
		assert.InDelta(t, 3.0, n, 1e-9)
	})

	t.Run("type must be a string", func(t *testing.T) {
		var a workflow.Action

		err := json.Unmarshal([]byte(`{"type":5}`), &a)

		require.Error(t, err)
	})
}

func TestAction_MarshalJSON(t *testing.T) {
	a, err := workflow.NewAction(workflow.ActionUpdateCustomField, map[string]kernel.Value{
		"field": kernel.String("gift_wrap"),
		"value": kernel.Bool(true),
	})
	require.NoError(t, err)

	data, err := json.Marshal(a)

	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"update_custom_field","field":"gift_wrap","value":true}`, string(data))
	assert.Equal(t, []string{"field", "value"}, a.Keys())
}

func TestAction_StringParam(t *testing.T) {
	a := workflow.Action{Type: workflow.ActionAddTag, Params: map[string]kernel.Value{"tag": kernel.String("vip")}}

	assert.Equal(t, "vip", a.StringParam("tag_name", "tag"))
	assert.Empty(t, a.StringParam("missing"))
	assert.True(t, workflow.Action{}.Param("x").IsNull())

	_, err := workflow.NewAction("", nil)
	require.Error(t, err)
}
