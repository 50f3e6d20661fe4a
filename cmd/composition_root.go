package cmd

import (
	"context"
	"log/slog"

	httpadapter "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/messaging"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/auditrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/application/audit"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/history"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/jobs"
	"orderflow/internal/pkg/keylock"
	"orderflow/internal/pkg/metrics"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived collaborators and builds every handler
// from them. The transition handler and the action executor depend on each
// other; the executor reaches the handler through a closure.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	orders     *orderrepo.GormOrderStore
	pubSub     *gochannel.GoChannel
	locks      *keylock.KeyLock
	registry   *prometheus.Registry
	metrics    *metrics.Recorder
	logger     *slog.Logger

	transition *commands.TransitionOrderCommandHandler
	executor   *commands.ActionExecutor
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		orders:     orderrepo.NewGormOrderStore(gormDB),
		pubSub:     messaging.NewPubSub(logger),
		locks:      keylock.New(),
		registry:   registry,
		metrics:    metrics.NewRecorder(registry),
		logger:     logger,
	}

	var transition *commands.TransitionOrderCommandHandler
	transitioner := commands.FuncStatusTransitioner(func(
		ctx context.Context,
		orderID kernel.UUID,
		newStatus, actor string,
		changeType history.ChangeType,
	) error {
		return transition.TransitionStatus(ctx, orderID, newStatus, actor, changeType)
	})

	notifier := messaging.NewNotifier(c.pubSub)
	c.executor = commands.NewActionExecutor(
		c.engineUoWFactory(),
		c.orders,
		notifier,
		messaging.NewInventoryRequests(c.pubSub),
		transitioner,
		c.metrics,
		logger,
	)
	transition = commands.NewTransitionOrderCommandHandler(
		c.engineUoWFactory(),
		c.orders,
		c.locks,
		c.executor,
		notifier,
		c.createAuditRecorder(),
		c.metrics,
		logger,
	)
	c.transition = transition
	return c
}

// Close releases the event bus.
func (c *CompositionRoot) Close() error {
	return c.pubSub.Close()
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) createAuditRecorder() *audit.Recorder {
	uow := c.uowFactory.Create()
	sinks := audit.Sinks{
		auditrepo.NewGormAuditSink(c.gormDB),
		messaging.NewAuditPublisher(c.pubSub),
	}
	return audit.NewRecorder(
		uow.HistoryRepository(),
		uow.AutomationLogRepository(),
		sinks,
		c.configs.HistoryRetryMaxElapsed,
		c.logger,
	)
}

func (c *CompositionRoot) engineUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) workflowUoWFactory() commands.WorkflowUoWFactory {
	return FuncWorkflowUoWFactory(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) approvalUoWFactory() commands.ApprovalUoWFactory {
	return FuncApprovalUoWFactory(func() commands.ApprovalUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ruleUoWFactory() commands.RuleUoWFactory {
	return FuncRuleUoWFactory(func() commands.RuleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() *commands.TransitionOrderCommandHandler {
	return c.transition
}

func (c *CompositionRoot) CreateProcessTriggerCommandHandler() commands.ProcessTriggerCommandHandler {
	return commands.NewProcessTriggerCommandHandler(
		c.engineUoWFactory(),
		c.orders,
		c.executor,
		c.createAuditRecorder(),
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateResolveApprovalCommandHandler() commands.ResolveApprovalCommandHandler {
	return commands.NewResolveApprovalCommandHandler(
		c.approvalUoWFactory(),
		c.locks,
		messaging.NewApprovalEventPublisher(c.pubSub),
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateApprovalEventSubscriber() *messaging.ApprovalEventSubscriber {
	handler := commands.NewApprovalResolvedHandler(c.approvalUoWFactory(), c.transition, c.logger)
	return messaging.NewApprovalEventSubscriber(c.pubSub, handler, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewScheduledTriggerJob(
			c.orders,
			c.CreateProcessTriggerCommandHandler(),
			c.configs.ScheduledTriggerCron,
			c.configs.TerminalStatuses,
			c.logger,
		),
	)
}

func (c *CompositionRoot) CreateHandlers() httpadapter.Handlers {
	db := c.gormDB
	return httpadapter.Handlers{
		CreateWorkflow: commands.NewCreateWorkflowCommandHandler(c.workflowUoWFactory()),
		UpdateWorkflow: commands.NewUpdateWorkflowCommandHandler(c.workflowUoWFactory()),
		DeleteWorkflow: commands.NewDeleteWorkflowCommandHandler(c.workflowUoWFactory()),
		CreateStep:     commands.NewCreateStepCommandHandler(c.workflowUoWFactory()),
		UpdateStep:     commands.NewUpdateStepCommandHandler(c.workflowUoWFactory()),
		DeleteStep:     commands.NewDeleteStepCommandHandler(c.workflowUoWFactory()),
		AssignWorkflow: commands.NewAssignWorkflowCommandHandler(c.workflowUoWFactory(), c.orders),

		TransitionOrder: c.CreateTransitionOrderCommandHandler(),
		ProcessTrigger:  c.CreateProcessTriggerCommandHandler(),

		RequestApproval: commands.NewRequestApprovalCommandHandler(c.approvalUoWFactory(), c.orders, c.logger),
		ResolveApproval: c.CreateResolveApprovalCommandHandler(),

		CreateRule: commands.NewCreateRuleCommandHandler(c.ruleUoWFactory()),
		UpdateRule: commands.NewUpdateRuleCommandHandler(c.ruleUoWFactory()),
		DeleteRule: commands.NewDeleteRuleCommandHandler(c.ruleUoWFactory()),

		GetWorkflow:        queries.NewGetWorkflowQueryHandler(db),
		ListWorkflows:      queries.NewListWorkflowsQueryHandler(db),
		GetDefaultWorkflow: queries.NewGetDefaultWorkflowQueryHandler(db),
		ListSteps:          queries.NewListStepsQueryHandler(db),
		GetOrderWorkflow:   queries.NewGetOrderWorkflowQueryHandler(db),

		GetAvailableTransitions: queries.NewGetAvailableTransitionsQueryHandler(c.uowFactory, c.orders),
		ListStatusHistory:       queries.NewListStatusHistoryQueryHandler(db),

		ListApprovals:   queries.NewListApprovalsQueryHandler(db),
		GetApproval:     queries.NewGetApprovalQueryHandler(db),
		IsGateSatisfied: queries.NewIsGateSatisfiedQueryHandler(c.uowFactory),

		ListRules:          queries.NewListRulesQueryHandler(db),
		GetRule:            queries.NewGetRuleQueryHandler(db),
		ListAutomationLogs: queries.NewListAutomationLogsQueryHandler(db),
	}
}

func (c *CompositionRoot) CreateEcho() *echo.Echo {
	return httpadapter.NewEcho(httpadapter.NewServer(c.CreateHandlers(), c.logger), c.registry)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncWorkflowUoWFactory func() commands.WorkflowUoW

func (f FuncWorkflowUoWFactory) Create() commands.WorkflowUoW {
	return f()
}

type FuncApprovalUoWFactory func() commands.ApprovalUoW

func (f FuncApprovalUoWFactory) Create() commands.ApprovalUoW {
	return f()
}

type FuncRuleUoWFactory func() commands.RuleUoW

func (f FuncRuleUoWFactory) Create() commands.RuleUoW {
	return f()
}
