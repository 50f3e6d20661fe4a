package services_test

import (
	"testing"

	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvalWith(t *testing.T, decision approval.Status) *approval.Approval {
	t.Helper()
	a, err := approval.NewApproval(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", "manager")
	require.NoError(t, err)
	if decision != approval.Pending {
		require.NoError(t, a.Resolve("user-1", decision, ""))
	}
	return a
}

func TestApprovalGate_IsSatisfied(t *testing.T) {
	gate := services.NewApprovalGate()

	testCases := []struct {
		name      string
		decisions []approval.Status
		want      bool
	}{
		{"no approvals", nil, false},
		{"single pending", []approval.Status{approval.Pending}, false},
		{"single approved", []approval.Status{approval.Approved}, true},
		{"single rejected", []approval.Status{approval.Rejected}, false},
		{"approved and pending", []approval.Status{approval.Approved, approval.Pending}, false},
		{"approved and rejected", []approval.Status{approval.Approved, approval.Rejected}, true},
		{"all approved", []approval.Status{approval.Approved, approval.Approved}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			approvals := make([]*approval.Approval, 0, len(tc.decisions))
			for _, d := range tc.decisions {
				approvals = append(approvals, approvalWith(t, d))
			}
			assert.Equal(t, tc.want, gate.IsSatisfied(approvals))
		})
	}
}
