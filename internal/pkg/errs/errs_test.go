package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("userId", "123")

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("userId", "123", cause)

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: userId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)

		assert.Equal(t, "age", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is age, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, "score", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("username")

		assert.Equal(t, "username", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: username", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("username", cause)

		assert.Equal(t, "username", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: username (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrInvalidTransition)
		require.Error(t, errs.ErrApprovalRequired)
		require.Error(t, errs.ErrNotPending)
		require.Error(t, errs.ErrConflict)
		require.Error(t, errs.ErrActionExecution)
		require.Error(t, errs.ErrStoreUnavailable)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "invalid transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "approval is not pending", errs.ErrNotPending.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("userId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("username")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)
	})

	t.Run("workflow errors survive wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("transition: %w", errs.NewInvalidTransitionError("o-1", "pending", "shipped"))
		require.ErrorIs(t, wrapped, errs.ErrInvalidTransition)

		var transitionErr *errs.InvalidTransitionError
		require.ErrorAs(t, wrapped, &transitionErr)
		assert.Equal(t, "shipped", transitionErr.To)

		require.ErrorIs(t, fmt.Errorf("x: %w", errs.NewApprovalRequiredError("o", "s", "")), errs.ErrApprovalRequired)
		require.ErrorIs(t, fmt.Errorf("x: %w", errs.NewNotPendingError("a", "approved")), errs.ErrNotPending)
		require.ErrorIs(t, fmt.Errorf("x: %w", errs.NewConflictError("workflow", "default")), errs.ErrConflict)
		require.ErrorIs(t, fmt.Errorf("x: %w", errs.NewStoreUnavailableError("op", nil)), errs.ErrStoreUnavailable)
		require.ErrorIs(t, fmt.Errorf("x: %w", errs.NewActionExecutionError("add_tag", nil)), errs.ErrActionExecution)
	})
}

func TestWorkflowErrorMessages(t *testing.T) {
	t.Run("InvalidTransitionError", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("o-1", "pending", "shipped")
		assert.Equal(t, `invalid transition: order o-1 cannot move from "pending" to "shipped"`, err.Error())
	})

	t.Run("ApprovalRequiredError with role", func(t *testing.T) {
		err := errs.NewApprovalRequiredError("o-1", "s-2", "manager")
		assert.Equal(t, "approval required: step s-2 of order o-1 needs approval by manager", err.Error())
	})

	t.Run("ApprovalRequiredError without role", func(t *testing.T) {
		err := errs.NewApprovalRequiredError("o-1", "s-2", "")
		assert.Equal(t, "approval required: step s-2 of order o-1", err.Error())
	})

	t.Run("NotPendingError", func(t *testing.T) {
		err := errs.NewNotPendingError("a-1", "approved")
		assert.Equal(t, "approval is not pending: a-1 is approved", err.Error())
	})

	t.Run("ConflictError", func(t *testing.T) {
		err := errs.NewConflictError("workflow", "default workflow cannot be deleted")
		assert.Equal(t, "conflict: workflow: default workflow cannot be deleted", err.Error())
	})

	t.Run("ActionExecutionError", func(t *testing.T) {
		err := errs.NewActionExecutionError("add_tag", errors.New("tag store down"))
		assert.Equal(t, "action execution failed: add_tag (cause: tag store down)", err.Error())
	})

	t.Run("StoreUnavailableError", func(t *testing.T) {
		err := errs.NewStoreUnavailableError("save workflow", errors.New("connection refused"))
		assert.Equal(t, "store unavailable: save workflow (cause: connection refused)", err.Error())
	})
}
