package approval_test

import (
	"testing"

	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPending(t *testing.T) *approval.Approval {
	t.Helper()
	a, err := approval.NewApproval(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", "manager")
	require.NoError(t, err)
	return a
}

func TestNewApproval(t *testing.T) {
	t.Run("should open a pending approval", func(t *testing.T) {
		a := newPending(t)

		require.NoError(t, a.Validate())
		assert.Equal(t, approval.Pending, a.Status())
		assert.True(t, a.IsPending())
		assert.Equal(t, "manager", a.ApprovalType())
		assert.Empty(t, a.ApproverID())
		assert.False(t, a.CreatedAt().IsZero())
	})

	t.Run("should require ids and type", func(t *testing.T) {
		_, err := approval.NewApproval(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), "", "manager")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = approval.NewApproval(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", " ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestApproval_Resolve(t *testing.T) {
	t.Run("should approve", func(t *testing.T) {
		a := newPending(t)

		err := a.Resolve("user-7", approval.Approved, "looks fine")

		require.NoError(t, err)
		assert.Equal(t, approval.Approved, a.Status())
		assert.Equal(t, "user-7", a.ApproverID())
		assert.Equal(t, "looks fine", a.Comments())
		assert.False(t, a.IsPending())
	})

	t.Run("should reject a second resolution", func(t *testing.T) {
		a := newPending(t)
		require.NoError(t, a.Resolve("user-7", approval.Rejected, "no"))

		err := a.Resolve("user-8", approval.Approved, "yes")

		var notPending *errs.NotPendingError
		require.ErrorAs(t, err, &notPending)
		assert.Equal(t, "rejected", notPending.Status)
		assert.Equal(t, approval.Rejected, a.Status())
		assert.Equal(t, "user-7", a.ApproverID())
	})

	t.Run("should refuse pending as a decision", func(t *testing.T) {
		a := newPending(t)

		err := a.Resolve("user-7", approval.Pending, "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, a.IsPending())
	})
}

func TestRestoreApproval(t *testing.T) {
	p := approval.RestoreParams{
		ID:           kernel.NewUUID(),
		OrderID:      kernel.NewUUID(),
		StepID:       kernel.NewUUID(),
		ApprovalType: "finance",
		ApproverID:   "user-1",
		Status:       approval.Approved,
	}

	a, err := approval.RestoreApproval(p)
	require.NoError(t, err)
	assert.Equal(t, approval.Approved, a.Status())

	p.Status = approval.Unknown
	_, err = approval.RestoreApproval(p)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus(t *testing.T) {
	for _, s := range []string{"pending", "Approved", " rejected "} {
		st, err := approval.ParseStatus(s)
		require.NoError(t, err, s)
		require.NoError(t, st.Validate())
	}

	_, err := approval.ParseStatus("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Equal(t, "approved", approval.Approved.String())
	assert.Equal(t, "unknown", approval.Status(42).String())
	assert.True(t, approval.Rejected.IsFinal())
	assert.False(t, approval.Pending.IsFinal())
}
