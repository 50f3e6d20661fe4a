package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/automation"

	"github.com/labstack/echo/v4"
)

type transitionResponse struct {
	Success   bool     `json:"success"`
	OldStatus string   `json:"old_status"`
	NewStatus string   `json:"new_status"`
	Errors    []string `json:"errors"`
}

type triggerResponse struct {
	RulesMatched int                 `json:"rules_matched"`
	Logs         []ruleExecutionView `json:"logs"`
}

type ruleExecutionView struct {
	ID              string                     `json:"id"`
	RuleID          string                     `json:"rule_id"`
	ExecutionResult string                     `json:"execution_result"`
	ActionsExecuted []automation.ActionOutcome `json:"actions_executed"`
	ErrorMessage    string                     `json:"error_message,omitempty"`
}

func (s *Server) GetOrderWorkflow(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderWorkflowQuery(id)
	if err != nil {
		return err
	}

	wf, err := s.h.GetOrderWorkflow.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wf)
}

// AssignWorkflow handles PUT /api/v1/orders/:id/workflow.
func (s *Server) AssignWorkflow(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req assignWorkflowRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	workflowID, err := parseUUID("workflow_id", req.WorkflowID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignWorkflowCommand(orderID, workflowID)
	if err != nil {
		return err
	}
	if err = s.h.AssignWorkflow.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) GetAvailableTransitions(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetAvailableTransitionsQuery(id)
	if err != nil {
		return err
	}

	transitions, err := s.h.GetAvailableTransitions.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transitions)
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions. Requests made over
// HTTP never bypass the approval gate.
func (s *Server) TransitionOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req transitionRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, req.NewStatus, req.ChangedBy, req.Notes, false)
	if err != nil {
		return err
	}
	result, err := s.h.TransitionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	errorList := result.Errors
	if errorList == nil {
		errorList = []string{}
	}
	return c.JSON(http.StatusOK, transitionResponse{
		Success:   result.Success,
		OldStatus: result.OldStatus,
		NewStatus: result.NewStatus,
		Errors:    errorList,
	})
}

func (s *Server) ListStatusHistory(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewListStatusHistoryQuery(id)
	if err != nil {
		return err
	}

	entries, err := s.h.ListStatusHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// ProcessTrigger handles POST /api/v1/orders/:id/triggers.
func (s *Server) ProcessTrigger(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req triggerRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewProcessTriggerCommand(orderID, req.Event)
	if err != nil {
		return err
	}
	result, err := s.h.ProcessTrigger.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp := triggerResponse{RulesMatched: result.RulesMatched, Logs: make([]ruleExecutionView, 0, len(result.Logs))}
	for _, l := range result.Logs {
		resp.Logs = append(resp.Logs, ruleExecutionView{
			ID:              l.ID.String(),
			RuleID:          l.RuleID.String(),
			ExecutionResult: string(l.Result),
			ActionsExecuted: l.ActionsExecuted,
			ErrorMessage:    l.ErrorMessage,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// IsGateSatisfied handles GET /api/v1/orders/:id/steps/:stepId/gate.
func (s *Server) IsGateSatisfied(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	stepID, err := pathUUID(c, "stepId")
	if err != nil {
		return err
	}
	query, err := queries.NewIsGateSatisfiedQuery(orderID, stepID)
	if err != nil {
		return err
	}

	gate, err := s.h.IsGateSatisfied.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, gate)
}
