package http

import (
	"errors"
	"net/http"

	"orderflow/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/moogar0880/problems"
)

// problemFor maps an error to its HTTP status and problem type.
func problemFor(err error) (int, string) {
	var (
		httpErr       *echo.HTTPError
		validationErr validator.ValidationErrors
	)
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, "http_error"
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, "invalid_transition"
	case errors.Is(err, errs.ErrApprovalRequired):
		return http.StatusConflict, "approval_required"
	case errors.Is(err, errs.ErrNotPending):
		return http.StatusConflict, "not_pending"
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, problemType := problemFor(err)
	problem := problems.NewStatusProblem(status).
		WithInstance(c.Request().URL.Path).
		WithType(problemType)

	var httpErr *echo.HTTPError
	switch {
	case status == http.StatusInternalServerError:
		s.logger.ErrorContext(c.Request().Context(), "request failed", "path", c.Request().URL.Path, "error", err)
	case errors.As(err, &httpErr):
		detail, ok := httpErr.Message.(string)
		if !ok {
			detail = http.StatusText(httpErr.Code)
		}
		problem = problem.WithDetail(detail)
	default:
		problem = problem.WithDetail(err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentType, problems.ProblemMediaType)
	if writeErr := c.JSON(status, problem); writeErr != nil {
		s.logger.ErrorContext(c.Request().Context(), "writing problem response failed", "error", writeErr)
	}
}
