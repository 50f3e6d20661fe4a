package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type resolveResponse struct {
	ID            kernel.UUID `json:"id"`
	Status        string      `json:"status"`
	ApproverID    string      `json:"approver_id"`
	Comments      string      `json:"comments"`
	GateSatisfied bool        `json:"gate_satisfied"`
}

// ListApprovals handles GET /api/v1/approvals?order_id=&step_id=&status=.
func (s *Server) ListApprovals(c echo.Context) error {
	orderID, err := queryUUID(c, "order_id")
	if err != nil {
		return err
	}
	stepID, err := queryUUID(c, "step_id")
	if err != nil {
		return err
	}
	var status *approval.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, parseErr := approval.ParseStatus(raw)
		if parseErr != nil {
			return parseErr
		}
		status = &parsed
	}

	query, err := queries.NewListApprovalsQuery(orderID, stepID, status)
	if err != nil {
		return err
	}
	approvals, err := s.h.ListApprovals.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, approvals)
}

// RequestApproval handles POST /api/v1/approvals.
func (s *Server) RequestApproval(c echo.Context) error {
	var req requestApprovalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	orderID, err := parseUUID("order_id", req.OrderID)
	if err != nil {
		return err
	}
	stepID, err := parseUUID("workflow_step_id", req.StepID)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewRequestApprovalCommand(id, orderID, stepID, req.ApproverID, req.ApprovalType)
	if err != nil {
		return err
	}
	if err = s.h.RequestApproval.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) GetApproval(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetApprovalQuery(id)
	if err != nil {
		return err
	}

	a, err := s.h.GetApproval.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// ResolveApproval handles POST /api/v1/approvals/:id/resolve.
func (s *Server) ResolveApproval(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req resolveApprovalRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	decision, err := approval.ParseStatus(req.Decision)
	if err != nil {
		return err
	}

	cmd, err := commands.NewResolveApprovalCommand(id, req.ApproverID, decision, req.Comments)
	if err != nil {
		return err
	}
	result, err := s.h.ResolveApproval.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resolveResponse{
		ID:            result.Approval.ID(),
		Status:        result.Approval.Status().String(),
		ApproverID:    result.Approval.ApproverID(),
		Comments:      result.Approval.Comments(),
		GateSatisfied: result.GateSatisfied,
	})
}
