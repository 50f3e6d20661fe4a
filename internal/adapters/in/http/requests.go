package http

import (
	"strconv"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/automation"
	"orderflow/internal/core/domain/model/condition"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type workflowRequest struct {
	Name              string                `json:"name" validate:"required"`
	Description       string                `json:"description"`
	IsDefault         bool                  `json:"is_default"`
	IsActive          *bool                 `json:"is_active"`
	TriggerConditions []condition.Condition `json:"trigger_conditions"`
}

func (r workflowRequest) fields() commands.WorkflowFields {
	return commands.WorkflowFields{
		Name:              r.Name,
		Description:       r.Description,
		IsDefault:         r.IsDefault,
		IsActive:          activeOrDefault(r.IsActive),
		TriggerConditions: r.TriggerConditions,
	}
}

type stepRequest struct {
	StepOrder        int                     `json:"step_order" validate:"gt=0"`
	StatusName       string                  `json:"status_name" validate:"required"`
	Conditions       []condition.Condition   `json:"conditions"`
	Actions          []workflow.Action       `json:"actions"`
	RequiresApproval bool                    `json:"requires_approval"`
	ApprovalRole     string                  `json:"approval_role" validate:"required_if=RequiresApproval true"`
	Notifications    []workflow.Notification `json:"notifications"`
}

func (r stepRequest) definition() workflow.StepDefinition {
	return workflow.StepDefinition{
		StepOrder:        r.StepOrder,
		StatusName:       r.StatusName,
		Conditions:       r.Conditions,
		Actions:          r.Actions,
		RequiresApproval: r.RequiresApproval,
		ApprovalRole:     r.ApprovalRole,
		Notifications:    r.Notifications,
	}
}

type assignWorkflowRequest struct {
	WorkflowID string `json:"workflow_id" validate:"required,uuid"`
}

type transitionRequest struct {
	NewStatus string `json:"new_status" validate:"required"`
	ChangedBy string `json:"changed_by"`
	Notes     string `json:"notes"`
}

type triggerRequest struct {
	Event string `json:"event" validate:"required"`
}

type requestApprovalRequest struct {
	OrderID      string `json:"order_id" validate:"required,uuid"`
	StepID       string `json:"workflow_step_id" validate:"required,uuid"`
	ApproverID   string `json:"approver_id"`
	ApprovalType string `json:"approval_type" validate:"required"`
}

type resolveApprovalRequest struct {
	ApproverID string `json:"approver_id" validate:"required"`
	Decision   string `json:"decision" validate:"required,oneof=approved rejected"`
	Comments   string `json:"comments"`
}

type ruleRequest struct {
	Name              string                        `json:"name" validate:"required"`
	Description       string                        `json:"description"`
	TriggerConditions []automation.TriggerCondition `json:"trigger_conditions" validate:"required,min=1"`
	Actions           []workflow.Action             `json:"actions"`
	Priority          int                           `json:"priority"`
	IsActive          *bool                         `json:"is_active"`
}

func (r ruleRequest) params(id kernel.UUID) automation.RuleParams {
	return automation.RuleParams{
		ID:                id,
		Name:              r.Name,
		Description:       r.Description,
		TriggerConditions: r.TriggerConditions,
		Actions:           r.Actions,
		Priority:          r.Priority,
		IsActive:          activeOrDefault(r.IsActive),
	}
}

func activeOrDefault(active *bool) bool {
	return active == nil || *active
}

// bindAndValidate decodes the body into req and checks its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return err
	}
	return c.Validate(req)
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	return parseUUID(name, c.Param(name))
}

func parseUUID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// queryUUID reads an optional id from the query string.
func queryUUID(c echo.Context, name string) (*kernel.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := parseUUID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// queryBool reads an optional boolean from the query string.
func queryBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &b, nil
}
