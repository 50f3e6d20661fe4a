package history_test

import (
	"testing"

	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	orderID, workflowID, stepID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	t.Run("should build workflow-bound entry", func(t *testing.T) {
		e, err := history.NewEntry(orderID, &workflowID, &stepID, "pending", "processing", "user-1", history.Manual, "ok")

		require.NoError(t, err)
		assert.False(t, e.ID.IsZero())
		assert.True(t, e.WorkflowID.IsEqual(workflowID))
		assert.True(t, e.StepID.IsEqual(stepID))
		assert.Equal(t, "processing", e.NewStatus)
		assert.Equal(t, history.Manual, e.ChangeType)
		assert.False(t, e.CreatedAt.IsZero())
	})

	t.Run("unassigned order has no workflow ids", func(t *testing.T) {
		e, err := history.NewEntry(orderID, nil, nil, "", "on_hold", "", history.Automated, "")

		require.NoError(t, err)
		assert.Nil(t, e.WorkflowID)
		assert.Nil(t, e.StepID)
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		_, err := history.NewEntry(kernel.UUID{}, nil, nil, "a", "b", "", history.Manual, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = history.NewEntry(orderID, nil, nil, "a", "", "", history.Manual, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = history.NewEntry(orderID, nil, nil, "a", "b", "", history.ChangeType("bulk"), "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
