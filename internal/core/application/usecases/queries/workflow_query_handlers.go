package queries

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const workflowColumns = `
	w.id,
	w.name,
	w.description,
	w.is_default,
	w.is_active,
	w.trigger_conditions,
	w.created_at,
	w.updated_at`

type GetWorkflowQueryHandler struct {
	db *gorm.DB
}

func NewGetWorkflowQueryHandler(db *gorm.DB) GetWorkflowQueryHandler {
	return GetWorkflowQueryHandler{db: db}
}

// Handle returns the workflow with its steps or ObjectNotFoundError.
func (h GetWorkflowQueryHandler) Handle(ctx context.Context, query GetWorkflowQuery) (WorkflowView, error) {
	if err := query.Validate(); err != nil {
		return WorkflowView{}, err
	}

	return workflowWithSteps(ctx, h.db, query.WorkflowID().String(),
		`SELECT`+workflowColumns+` FROM workflows w WHERE w.id = ?`,
		query.WorkflowID().Bytes())
}

type ListWorkflowsQueryHandler struct {
	db *gorm.DB
}

func NewListWorkflowsQueryHandler(db *gorm.DB) ListWorkflowsQueryHandler {
	return ListWorkflowsQueryHandler{db: db}
}

// Handle returns matching workflows ordered by name. Steps are not loaded.
func (h ListWorkflowsQueryHandler) Handle(ctx context.Context, query ListWorkflowsQuery) ([]WorkflowView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return selectWorkflows(ctx, h.db, `
		SELECT`+workflowColumns+`
		FROM workflows w
		WHERE (CAST(? AS boolean) IS NULL OR w.is_active = ?)
		  AND (CAST(? AS boolean) IS NULL OR w.is_default = ?)
		ORDER BY w.name, w.id
	`, query.Active(), query.Active(), query.IsDefault(), query.IsDefault())
}

type ListStepsQueryHandler struct {
	db *gorm.DB
}

func NewListStepsQueryHandler(db *gorm.DB) ListStepsQueryHandler {
	return ListStepsQueryHandler{db: db}
}

// Handle returns the steps in step order, or ObjectNotFoundError for an unknown workflow.
func (h ListStepsQueryHandler) Handle(ctx context.Context, query ListStepsQuery) ([]StepView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists bool
	if err := h.db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM workflows WHERE id = ?)`, query.WorkflowID().Bytes()).
		Scan(&exists).Error; err != nil {
		return nil, storeError("list steps", err)
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("workflow", query.WorkflowID().String())
	}

	return selectSteps(ctx, h.db, query.WorkflowID())
}

type GetDefaultWorkflowQueryHandler struct {
	db *gorm.DB
}

func NewGetDefaultWorkflowQueryHandler(db *gorm.DB) GetDefaultWorkflowQueryHandler {
	return GetDefaultWorkflowQueryHandler{db: db}
}

func (h GetDefaultWorkflowQueryHandler) Handle(ctx context.Context, query GetDefaultWorkflowQuery) (WorkflowView, error) {
	if err := query.Validate(); err != nil {
		return WorkflowView{}, err
	}

	return workflowWithSteps(ctx, h.db, "default",
		`SELECT`+workflowColumns+` FROM workflows w WHERE w.is_default`)
}

type GetOrderWorkflowQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderWorkflowQueryHandler(db *gorm.DB) GetOrderWorkflowQueryHandler {
	return GetOrderWorkflowQueryHandler{db: db}
}

// Handle returns the governing workflow. ObjectNotFoundError means the order is
// outside workflow management.
func (h GetOrderWorkflowQueryHandler) Handle(ctx context.Context, query GetOrderWorkflowQuery) (WorkflowView, error) {
	if err := query.Validate(); err != nil {
		return WorkflowView{}, err
	}

	return workflowWithSteps(ctx, h.db, "order "+query.OrderID().String(), `
		SELECT`+workflowColumns+`
		FROM workflows w
		WHERE w.id = COALESCE(
			(SELECT a.workflow_id FROM order_workflows a WHERE a.order_id = ? AND a.is_active),
			(SELECT d.id FROM workflows d WHERE d.is_default)
		)
	`, query.OrderID().Bytes())
}

func workflowWithSteps(ctx context.Context, db *gorm.DB, notFoundID, stmt string, args ...any) (WorkflowView, error) {
	workflows, err := selectWorkflows(ctx, db, stmt, args...)
	if err != nil {
		return WorkflowView{}, err
	}
	if len(workflows) == 0 {
		return WorkflowView{}, errs.NewObjectNotFoundError("workflow", notFoundID)
	}

	wf := workflows[0]
	steps, err := selectSteps(ctx, db, wf.ID)
	if err != nil {
		return WorkflowView{}, err
	}
	wf.Steps = steps
	return wf, nil
}

func selectWorkflows(ctx context.Context, db *gorm.DB, stmt string, args ...any) ([]WorkflowView, error) {
	rows, err := db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, storeError("read workflows", err)
	}
	defer rows.Close()

	workflows := make([]WorkflowView, 0)
	for rows.Next() {
		wf, scanErr := scanWorkflow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		workflows = append(workflows, wf)
	}
	if err = rows.Err(); err != nil {
		return nil, storeError("read workflows", err)
	}
	return workflows, nil
}

func scanWorkflow(row rowScanner) (WorkflowView, error) {
	var (
		wf         WorkflowView
		id         uuid.UUID
		conditions []byte
	)
	if err := row.Scan(
		&id,
		&wf.Name,
		&wf.Description,
		&wf.IsDefault,
		&wf.IsActive,
		&conditions,
		&wf.CreatedAt,
		&wf.UpdatedAt,
	); err != nil {
		return WorkflowView{}, storeError("read workflows", err)
	}

	workflowID, err := toUUID(id)
	if err != nil {
		return WorkflowView{}, err
	}
	wf.ID = workflowID
	if err = decodeJSON("trigger_conditions", conditions, &wf.TriggerConditions); err != nil {
		return WorkflowView{}, err
	}
	return wf, nil
}

func selectSteps(ctx context.Context, db *gorm.DB, workflowID kernel.UUID) ([]StepView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			workflow_id,
			step_order,
			status_name,
			conditions,
			actions,
			requires_approval,
			approval_role,
			notifications
		FROM workflow_steps
		WHERE workflow_id = ?
		ORDER BY step_order
	`, workflowID.Bytes()).Rows()
	if err != nil {
		return nil, storeError("read steps", err)
	}
	defer rows.Close()

	steps := make([]StepView, 0)
	for rows.Next() {
		var (
			step                               StepView
			id, wfID                           uuid.UUID
			conditions, actions, notifications []byte
		)
		if err = rows.Scan(
			&id,
			&wfID,
			&step.StepOrder,
			&step.StatusName,
			&conditions,
			&actions,
			&step.RequiresApproval,
			&step.ApprovalRole,
			&notifications,
		); err != nil {
			return nil, storeError("read steps", err)
		}

		if step.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if step.WorkflowID, err = toUUID(wfID); err != nil {
			return nil, err
		}
		if err = errors.Join(
			decodeJSON("conditions", conditions, &step.Conditions),
			decodeJSON("actions", actions, &step.Actions),
			decodeJSON("notifications", notifications, &step.Notifications),
		); err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	if err = rows.Err(); err != nil {
		return nil, storeError("read steps", err)
	}
	return steps, nil
}
