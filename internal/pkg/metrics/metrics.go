// Package metrics exposes Prometheus counters for the workflow engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "orderflow"

// Recorder holds the engine's counters. A nil *Recorder is valid and records nothing,
// which keeps handlers usable in tests without a registry.
type Recorder struct {
	transitions         *prometheus.CounterVec
	approvalResolutions *prometheus.CounterVec
	ruleExecutions      *prometheus.CounterVec
	actionFailures      *prometheus.CounterVec
}

// NewRecorder registers the engine counters on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Order status transitions by outcome and change type.",
		}, []string{"outcome", "change_type"}),
		approvalResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "approval_resolutions_total",
			Help:      "Resolved approvals by decision.",
		}, []string{"decision"}),
		ruleExecutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "automation_rule_executions_total",
			Help:      "Automation rule executions by trigger event and result.",
		}, []string{"event", "result"}),
		actionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "action_failures_total",
			Help:      "Failed step or rule actions by action type.",
		}, []string{"action_type"}),
	}
}

func (r *Recorder) Transition(outcome, changeType string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(outcome, changeType).Inc()
}

func (r *Recorder) ApprovalResolved(decision string) {
	if r == nil {
		return
	}
	r.approvalResolutions.WithLabelValues(decision).Inc()
}

func (r *Recorder) RuleExecuted(event, result string) {
	if r == nil {
		return
	}
	r.ruleExecutions.WithLabelValues(event, result).Inc()
}

func (r *Recorder) ActionFailed(actionType string) {
	if r == nil {
		return
	}
	r.actionFailures.WithLabelValues(actionType).Inc()
}
