package guard_test

import (
	"errors"
	"testing"

	"orderflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	g := guard.NewConstructorGuard()

	require.NoError(t, g.Validate(errors.New("not constructed")))
	require.NoError(t, g.Validate(nil))
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})

	t.Run("guard_embedded_in_struct", func(t *testing.T) {
		type approvalRequest struct {
			orderID string
			guard   guard.ConstructorGuard
		}
		errNotConstructed := errors.New("approvalRequest must be created via newApprovalRequest")
		newApprovalRequest := func(orderID string) approvalRequest {
			return approvalRequest{orderID: orderID, guard: guard.NewConstructorGuard()}
		}

		built := newApprovalRequest("o-1")
		require.NoError(t, built.guard.Validate(errNotConstructed))

		var raw approvalRequest
		assert.Equal(t, errNotConstructed, raw.guard.Validate(errNotConstructed))
	})
}
