package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type createdResponse struct {
	ID kernel.UUID `json:"id"`
}

// ListWorkflows handles GET /api/v1/workflows?active=&default=.
func (s *Server) ListWorkflows(c echo.Context) error {
	active, err := queryBool(c, "active")
	if err != nil {
		return err
	}
	isDefault, err := queryBool(c, "default")
	if err != nil {
		return err
	}

	workflows, err := s.h.ListWorkflows.Handle(c.Request().Context(), queries.NewListWorkflowsQuery(active, isDefault))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workflows)
}

// CreateWorkflow handles POST /api/v1/workflows.
func (s *Server) CreateWorkflow(c echo.Context) error {
	var req workflowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateWorkflowCommand(id, req.fields())
	if err != nil {
		return err
	}
	if err = s.h.CreateWorkflow.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) GetDefaultWorkflow(c echo.Context) error {
	wf, err := s.h.GetDefaultWorkflow.Handle(c.Request().Context(), queries.NewGetDefaultWorkflowQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wf)
}

func (s *Server) GetWorkflow(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetWorkflowQuery(id)
	if err != nil {
		return err
	}

	wf, err := s.h.GetWorkflow.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wf)
}

// UpdateWorkflow handles PUT /api/v1/workflows/:id. The body replaces every
// editable field.
func (s *Server) UpdateWorkflow(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req workflowRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateWorkflowCommand(id, req.fields())
	if err != nil {
		return err
	}
	if err = s.h.UpdateWorkflow.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteWorkflow(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteWorkflowCommand(id)
	if err != nil {
		return err
	}

	if err = s.h.DeleteWorkflow.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ListSteps(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewListStepsQuery(id)
	if err != nil {
		return err
	}

	steps, err := s.h.ListSteps.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, steps)
}

// CreateStep handles POST /api/v1/workflows/:id/steps.
func (s *Server) CreateStep(c echo.Context) error {
	workflowID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req stepRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateStepCommand(id, workflowID, req.definition())
	if err != nil {
		return err
	}
	if err = s.h.CreateStep.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) UpdateStep(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req stepRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateStepCommand(id, req.definition())
	if err != nil {
		return err
	}
	if err = s.h.UpdateStep.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteStep(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteStepCommand(id)
	if err != nil {
		return err
	}

	if err = s.h.DeleteStep.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
