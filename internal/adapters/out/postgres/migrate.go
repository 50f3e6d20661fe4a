package postgres

import (
	"orderflow/internal/adapters/out/postgres/approvalrepo"
	"orderflow/internal/adapters/out/postgres/auditrepo"
	"orderflow/internal/adapters/out/postgres/automationrepo"
	"orderflow/internal/adapters/out/postgres/fulfillmentrepo"
	"orderflow/internal/adapters/out/postgres/historyrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/tagrepo"
	"orderflow/internal/adapters/out/postgres/workflowrepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns or reads, in dependency order.
func Models() []any {
	return []any{
		&workflowrepo.WorkflowDTO{},
		&workflowrepo.StepDTO{},
		&workflowrepo.AssignmentDTO{},
		&approvalrepo.ApprovalDTO{},
		&automationrepo.RuleDTO{},
		&automationrepo.LogDTO{},
		&historyrepo.EntryDTO{},
		&tagrepo.TagDTO{},
		&tagrepo.OrderTagDTO{},
		&fulfillmentrepo.FulfillmentDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.CustomFieldDTO{},
		&auditrepo.EntryDTO{},
	}
}

// Migrate creates or updates the schema. A partial unique index keeps at most one
// default workflow.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_workflows_single_default
		ON workflows (is_default) WHERE is_default`).Error
}

// Tables returns the table names of Models, for truncation in tests and tooling.
func Tables() []string {
	return []string{
		"workflows", "workflow_steps", "order_workflows", "approvals",
		"automation_rules", "automation_log", "status_history", "tags",
		"order_tags", "fulfillments", "orders", "order_custom_fields", "audit_log",
	}
}
