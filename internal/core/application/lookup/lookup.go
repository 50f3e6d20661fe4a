// Package lookup resolves what the engine needs to know about an order before
// deciding anything: the workflow that governs it and the facts its conditions
// are evaluated against.
package lookup

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/condition"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// WorkflowRepos is the part of a unit of work needed to resolve an order's workflow.
type WorkflowRepos interface {
	WorkflowRepository() ports.WorkflowRepository
	AssignmentRepository() ports.AssignmentRepository
}

type TagRepos interface {
	TagRepository() ports.TagRepository
}

// OrderWorkflow returns the workflow governing the order: its assignment, else the
// default workflow. Nil means the order is outside workflow management.
func OrderWorkflow(ctx context.Context, repos WorkflowRepos, orderID kernel.UUID) (*workflow.Workflow, error) {
	assignment, err := repos.AssignmentRepository().Get(ctx, orderID)
	switch {
	case err == nil:
		return repos.WorkflowRepository().Get(ctx, assignment.WorkflowID)
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	wf, err := repos.WorkflowRepository().GetDefault(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return wf, err
}

// Facts pairs the snapshot with the order's tags, read only when a condition
// needs them.
func Facts(
	ctx context.Context,
	repos TagRepos,
	snapshot *order.Snapshot,
	conditions []condition.Condition,
) (services.OrderFacts, error) {
	facts := services.OrderFacts{Snapshot: snapshot}
	if !services.NeedsTags(conditions) {
		return facts, nil
	}

	tags, err := repos.TagRepository().Names(ctx, snapshot.ID())
	if err != nil {
		return services.OrderFacts{}, err
	}
	facts.Tags = tags
	return facts, nil
}

// StepConditions flattens the conditions of every step.
func StepConditions(steps []*workflow.Step) []condition.Condition {
	var all []condition.Condition
	for _, s := range steps {
		all = append(all, s.Conditions()...)
	}
	return all
}
