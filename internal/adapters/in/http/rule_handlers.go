package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListRules handles GET /api/v1/rules?active=true.
func (s *Server) ListRules(c echo.Context) error {
	active, err := queryBool(c, "active")
	if err != nil {
		return err
	}

	rules, err := s.h.ListRules.Handle(c.Request().Context(), queries.NewListRulesQuery(active != nil && *active))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rules)
}

func (s *Server) CreateRule(c echo.Context) error {
	var req ruleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewSaveRuleCommand(req.params(id))
	if err != nil {
		return err
	}
	if err = s.h.CreateRule.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) GetRule(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetRuleQuery(id)
	if err != nil {
		return err
	}

	rule, err := s.h.GetRule.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rule)
}

func (s *Server) UpdateRule(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ruleRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSaveRuleCommand(req.params(id))
	if err != nil {
		return err
	}
	if err = s.h.UpdateRule.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteRule(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteRuleCommand(id)
	if err != nil {
		return err
	}

	if err = s.h.DeleteRule.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAutomationLogs handles GET /api/v1/automation-logs?order_id=&rule_id=.
func (s *Server) ListAutomationLogs(c echo.Context) error {
	orderID, err := queryUUID(c, "order_id")
	if err != nil {
		return err
	}
	ruleID, err := queryUUID(c, "rule_id")
	if err != nil {
		return err
	}

	logs, err := s.h.ListAutomationLogs.Handle(c.Request().Context(), queries.NewListAutomationLogsQuery(orderID, ruleID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}
