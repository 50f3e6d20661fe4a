package automation

import (
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// ExecutionResult is the aggregate outcome of one rule execution.
type ExecutionResult string

const (
	ResultSuccess ExecutionResult = "success"
	ResultPartial ExecutionResult = "partial"
	ResultFailed  ExecutionResult = "failed"
)

// ActionOutcome records how one action of a rule went.
type ActionOutcome struct {
	Action  string `json:"action"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Succeeded builds a successful outcome.
func Succeeded(actionType string) ActionOutcome {
	return ActionOutcome{Action: actionType, Success: true}
}

// Failed builds a failed outcome carrying err's message.
func Failed(actionType string, err error) ActionOutcome {
	return ActionOutcome{Action: actionType, Error: err.Error()}
}

// ResultOf aggregates outcomes: success without failures, failed when nothing
// succeeded, partial otherwise.
func ResultOf(outcomes []ActionOutcome) ExecutionResult {
	var ok, failed int
	for _, o := range outcomes {
		if o.Success {
			ok++
		} else {
			failed++
		}
	}
	switch {
	case failed == 0:
		return ResultSuccess
	case ok == 0:
		return ResultFailed
	default:
		return ResultPartial
	}
}

// Log is one row of the automation log.
type Log struct {
	ID              kernel.UUID
	RuleID          kernel.UUID
	OrderID         kernel.UUID
	TriggerEvent    string
	ActionsExecuted []ActionOutcome
	Result          ExecutionResult
	ErrorMessage    string
	ExecutedAt      time.Time
}

// NewLog records a completed rule execution.
func NewLog(ruleID, orderID kernel.UUID, event string, outcomes []ActionOutcome) Log {
	var failures []string
	for _, o := range outcomes {
		if !o.Success {
			failures = append(failures, o.Action+": "+o.Error)
		}
	}
	return Log{
		ID:              kernel.NewUUID(),
		RuleID:          ruleID,
		OrderID:         orderID,
		TriggerEvent:    event,
		ActionsExecuted: append([]ActionOutcome(nil), outcomes...),
		Result:          ResultOf(outcomes),
		ErrorMessage:    strings.Join(failures, "; "),
		ExecutedAt:      time.Now().UTC(),
	}
}

// NewAbortedLog records a rule that could not start, e.g. because the order
// could not be read.
func NewAbortedLog(ruleID, orderID kernel.UUID, event string, cause error) Log {
	return Log{
		ID:           kernel.NewUUID(),
		RuleID:       ruleID,
		OrderID:      orderID,
		TriggerEvent: event,
		Result:       ResultFailed,
		ErrorMessage: cause.Error(),
		ExecutedAt:   time.Now().UTC(),
	}
}

// Errors returns the failure messages of the log's outcomes.
func (l Log) Errors() []string {
	var out []string
	for _, o := range l.ActionsExecuted {
		if !o.Success {
			out = append(out, o.Action+": "+o.Error)
		}
	}
	if len(out) == 0 && l.Result == ResultFailed && l.ErrorMessage != "" {
		out = append(out, l.ErrorMessage)
	}
	return out
}
