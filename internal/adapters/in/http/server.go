// Package http is the REST adapter of the workflow engine. Handlers translate
// requests into commands and queries; every failure is rendered as an RFC 7807
// problem document by a single echo error handler.
package http

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
)

// CommandHandler runs a command without a result.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, command C) error
}

// ResultHandler runs a command or query that returns a result.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// Handlers is every use case exposed over HTTP.
type Handlers struct {
	CreateWorkflow CommandHandler[commands.CreateWorkflowCommand]
	UpdateWorkflow CommandHandler[commands.UpdateWorkflowCommand]
	DeleteWorkflow CommandHandler[commands.DeleteWorkflowCommand]
	CreateStep     CommandHandler[commands.CreateStepCommand]
	UpdateStep     CommandHandler[commands.UpdateStepCommand]
	DeleteStep     CommandHandler[commands.DeleteStepCommand]
	AssignWorkflow CommandHandler[commands.AssignWorkflowCommand]

	TransitionOrder ResultHandler[commands.TransitionOrderCommand, commands.TransitionResult]
	ProcessTrigger  ResultHandler[commands.ProcessTriggerCommand, commands.ProcessTriggerResult]

	RequestApproval CommandHandler[commands.RequestApprovalCommand]
	ResolveApproval ResultHandler[commands.ResolveApprovalCommand, commands.ResolveApprovalResult]

	CreateRule CommandHandler[commands.SaveRuleCommand]
	UpdateRule CommandHandler[commands.SaveRuleCommand]
	DeleteRule CommandHandler[commands.DeleteRuleCommand]

	GetWorkflow        ResultHandler[queries.GetWorkflowQuery, queries.WorkflowView]
	ListWorkflows      ResultHandler[queries.ListWorkflowsQuery, []queries.WorkflowView]
	GetDefaultWorkflow ResultHandler[queries.GetDefaultWorkflowQuery, queries.WorkflowView]
	ListSteps          ResultHandler[queries.ListStepsQuery, []queries.StepView]
	GetOrderWorkflow   ResultHandler[queries.GetOrderWorkflowQuery, queries.WorkflowView]

	GetAvailableTransitions ResultHandler[queries.GetAvailableTransitionsQuery, []queries.TransitionView]
	ListStatusHistory       ResultHandler[queries.ListStatusHistoryQuery, []queries.HistoryEntryView]

	ListApprovals   ResultHandler[queries.ListApprovalsQuery, []queries.ApprovalView]
	GetApproval     ResultHandler[queries.GetApprovalQuery, queries.ApprovalView]
	IsGateSatisfied ResultHandler[queries.IsGateSatisfiedQuery, queries.GateStatusView]

	ListRules          ResultHandler[queries.ListRulesQuery, []queries.RuleView]
	GetRule            ResultHandler[queries.GetRuleQuery, queries.RuleView]
	ListAutomationLogs ResultHandler[queries.ListAutomationLogsQuery, []queries.AutomationLogView]
}

// Server holds the use cases behind the REST routes.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http"),
	}
}
