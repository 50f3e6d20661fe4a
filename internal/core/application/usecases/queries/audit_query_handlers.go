package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListStatusHistoryQueryHandler struct {
	db *gorm.DB
}

func NewListStatusHistoryQueryHandler(db *gorm.DB) ListStatusHistoryQueryHandler {
	return ListStatusHistoryQueryHandler{db: db}
}

func (h ListStatusHistoryQueryHandler) Handle(ctx context.Context, query ListStatusHistoryQuery) ([]HistoryEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			workflow_id,
			workflow_step_id,
			old_status,
			new_status,
			changed_by,
			change_type,
			notes,
			created_at
		FROM status_history
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, storeError("list status history", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntryView, 0)
	for rows.Next() {
		var (
			e                  HistoryEntryView
			id, orderID        uuid.UUID
			workflowID, stepID uuid.NullUUID
			changedBy          sql.NullString
		)
		if err = rows.Scan(
			&id,
			&orderID,
			&workflowID,
			&stepID,
			&e.OldStatus,
			&e.NewStatus,
			&changedBy,
			&e.ChangeType,
			&e.Notes,
			&e.CreatedAt,
		); err != nil {
			return nil, storeError("list status history", err)
		}

		if e.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if e.OrderID, err = toUUID(orderID); err != nil {
			return nil, err
		}
		if e.WorkflowID, err = toOptionalUUID(workflowID); err != nil {
			return nil, err
		}
		if e.StepID, err = toOptionalUUID(stepID); err != nil {
			return nil, err
		}
		e.ChangedBy = toOptionalString(changedBy)
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, storeError("list status history", err)
	}
	return entries, nil
}

type ListAutomationLogsQueryHandler struct {
	db *gorm.DB
}

func NewListAutomationLogsQueryHandler(db *gorm.DB) ListAutomationLogsQueryHandler {
	return ListAutomationLogsQueryHandler{db: db}
}

func (h ListAutomationLogsQueryHandler) Handle(ctx context.Context, query ListAutomationLogsQuery) ([]AutomationLogView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).
		Table("automation_log").
		Select("id, rule_id, order_id, trigger_event, actions_executed, execution_result, error_message, executed_at").
		Order("executed_at, id")
	if id := query.OrderID(); id != nil {
		q = q.Where("order_id = ?", id.Bytes())
	}
	if id := query.RuleID(); id != nil {
		q = q.Where("rule_id = ?", id.Bytes())
	}

	rows, err := q.Rows()
	if err != nil {
		return nil, storeError("list automation logs", err)
	}
	defer rows.Close()

	logs := make([]AutomationLogView, 0)
	for rows.Next() {
		var (
			l                   AutomationLogView
			id, ruleID, orderID uuid.UUID
			actions             []byte
		)
		if err = rows.Scan(
			&id,
			&ruleID,
			&orderID,
			&l.TriggerEvent,
			&actions,
			&l.ExecutionResult,
			&l.ErrorMessage,
			&l.ExecutedAt,
		); err != nil {
			return nil, storeError("list automation logs", err)
		}

		if l.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if l.RuleID, err = toUUID(ruleID); err != nil {
			return nil, err
		}
		if l.OrderID, err = toUUID(orderID); err != nil {
			return nil, err
		}
		if err = decodeJSON("actions_executed", actions, &l.ActionsExecuted); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err = rows.Err(); err != nil {
		return nil, storeError("list automation logs", err)
	}
	return logs, nil
}
