package audit

import (
	"context"
	"errors"

	"orderflow/internal/core/ports"
)

// Sinks fans an audit event out to every sink. All sinks are tried; their
// errors are joined.
type Sinks []ports.AuditSink

func (s Sinks) Append(ctx context.Context, event string, payload map[string]any) error {
	var errList []error
	for _, sink := range s {
		if err := sink.Append(ctx, event, payload); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
