package queries

import (
	"context"
	"database/sql"

	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const approvalColumns = `
	id,
	order_id,
	workflow_step_id,
	approval_type,
	approver_id,
	status,
	comments,
	created_at,
	updated_at`

type ListApprovalsQueryHandler struct {
	db *gorm.DB
}

func NewListApprovalsQueryHandler(db *gorm.DB) ListApprovalsQueryHandler {
	return ListApprovalsQueryHandler{db: db}
}

func (h ListApprovalsQueryHandler) Handle(ctx context.Context, query ListApprovalsQuery) ([]ApprovalView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).Table("approvals").Select(approvalColumns).Order("created_at, id")
	if id := query.OrderID(); id != nil {
		q = q.Where("order_id = ?", id.Bytes())
	}
	if id := query.StepID(); id != nil {
		q = q.Where("workflow_step_id = ?", id.Bytes())
	}
	if status := query.Status(); status != nil {
		q = q.Where("status = ?", status.String())
	}

	rows, err := q.Rows()
	if err != nil {
		return nil, storeError("list approvals", err)
	}
	defer rows.Close()

	approvals := make([]ApprovalView, 0)
	for rows.Next() {
		a, scanErr := scanApproval(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		approvals = append(approvals, a)
	}
	if err = rows.Err(); err != nil {
		return nil, storeError("list approvals", err)
	}
	return approvals, nil
}

type GetApprovalQueryHandler struct {
	db *gorm.DB
}

func NewGetApprovalQueryHandler(db *gorm.DB) GetApprovalQueryHandler {
	return GetApprovalQueryHandler{db: db}
}

func (h GetApprovalQueryHandler) Handle(ctx context.Context, query GetApprovalQuery) (ApprovalView, error) {
	if err := query.Validate(); err != nil {
		return ApprovalView{}, err
	}

	rows, err := h.db.WithContext(ctx).
		Raw(`SELECT`+approvalColumns+` FROM approvals WHERE id = ?`, query.ApprovalID().Bytes()).
		Rows()
	if err != nil {
		return ApprovalView{}, storeError("get approval", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ApprovalView{}, storeError("get approval", err)
		}
		return ApprovalView{}, errs.NewObjectNotFoundError("approval", query.ApprovalID().String())
	}
	return scanApproval(rows)
}

func scanApproval(row rowScanner) (ApprovalView, error) {
	var (
		a                 ApprovalView
		id, order, stepID uuid.UUID
		approverID        sql.NullString
	)
	if err := row.Scan(
		&id,
		&order,
		&stepID,
		&a.ApprovalType,
		&approverID,
		&a.Status,
		&a.Comments,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return ApprovalView{}, storeError("read approvals", err)
	}

	var err error
	if a.ID, err = toUUID(id); err != nil {
		return ApprovalView{}, err
	}
	if a.OrderID, err = toUUID(order); err != nil {
		return ApprovalView{}, err
	}
	if a.StepID, err = toUUID(stepID); err != nil {
		return ApprovalView{}, err
	}
	a.ApproverID = toOptionalString(approverID)
	return a, nil
}

// GateStatusView summarizes the approvals of an (order, step) pair.
type GateStatusView struct {
	Satisfied bool `json:"satisfied"`
	Pending   int  `json:"pending"`
	Approved  int  `json:"approved"`
	Rejected  int  `json:"rejected"`
}

// IsGateSatisfiedQueryHandler applies the approval gate to the stored approvals.
type IsGateSatisfiedQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	gate       services.ApprovalGate
}

func NewIsGateSatisfiedQueryHandler(uowFactory ports.UnitOfWorkFactory) IsGateSatisfiedQueryHandler {
	return IsGateSatisfiedQueryHandler{uowFactory: uowFactory, gate: services.NewApprovalGate()}
}

func (h IsGateSatisfiedQueryHandler) Handle(ctx context.Context, query IsGateSatisfiedQuery) (GateStatusView, error) {
	if err := query.Validate(); err != nil {
		return GateStatusView{}, err
	}

	approvals, err := h.uowFactory.Create().ApprovalRepository().ListByOrderStep(ctx, query.OrderID(), query.StepID())
	if err != nil {
		return GateStatusView{}, err
	}

	view := GateStatusView{Satisfied: h.gate.IsSatisfied(approvals)}
	for _, a := range approvals {
		switch a.Status() {
		case approval.Pending:
			view.Pending++
		case approval.Approved:
			view.Approved++
		case approval.Rejected:
			view.Rejected++
		}
	}
	return view, nil
}
