package http

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type requestValidator struct {
	validate *validator.Validate
}

func (v requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// NewEcho builds the echo instance serving the API, /health and /metrics.
func NewEcho(s *Server, gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api/v1")

	api.GET("/workflows", s.ListWorkflows)
	api.POST("/workflows", s.CreateWorkflow)
	api.GET("/workflows/default", s.GetDefaultWorkflow)
	api.GET("/workflows/:id", s.GetWorkflow)
	api.PUT("/workflows/:id", s.UpdateWorkflow)
	api.DELETE("/workflows/:id", s.DeleteWorkflow)
	api.GET("/workflows/:id/steps", s.ListSteps)
	api.POST("/workflows/:id/steps", s.CreateStep)
	api.PUT("/steps/:id", s.UpdateStep)
	api.DELETE("/steps/:id", s.DeleteStep)

	api.GET("/orders/:id/workflow", s.GetOrderWorkflow)
	api.PUT("/orders/:id/workflow", s.AssignWorkflow)
	api.GET("/orders/:id/transitions", s.GetAvailableTransitions)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.GET("/orders/:id/history", s.ListStatusHistory)
	api.POST("/orders/:id/triggers", s.ProcessTrigger)
	api.GET("/orders/:id/steps/:stepId/gate", s.IsGateSatisfied)

	api.GET("/approvals", s.ListApprovals)
	api.POST("/approvals", s.RequestApproval)
	api.GET("/approvals/:id", s.GetApproval)
	api.POST("/approvals/:id/resolve", s.ResolveApproval)

	api.GET("/rules", s.ListRules)
	api.POST("/rules", s.CreateRule)
	api.GET("/rules/:id", s.GetRule)
	api.PUT("/rules/:id", s.UpdateRule)
	api.DELETE("/rules/:id", s.DeleteRule)
	api.GET("/automation-logs", s.ListAutomationLogs)

	return e
}
