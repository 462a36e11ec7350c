package webapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/talkincode/estatehub/internal/app"
	"github.com/talkincode/estatehub/internal/domain"
	"github.com/talkincode/estatehub/internal/webserver"
	"go.uber.org/zap"
)

type Response struct {
	Data interface{} `json:"data"`
}

type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Data: data})
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{Data: data})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, ErrorResponse{Code: code, Message: message, Details: details})
}

// handleError maps service errors onto HTTP responses
func handleError(c echo.Context, err error) error {
	if de, isDomain := domain.AsError(err); isDomain {
		switch de.Kind {
		case domain.KindValidation:
			return fail(c, http.StatusBadRequest, de.Code, de.Message, nil)
		case domain.KindAuthorization:
			return fail(c, http.StatusForbidden, de.Code, de.Message, nil)
		case domain.KindNotFound:
			return fail(c, http.StatusNotFound, de.Code, de.Message, nil)
		}
	}
	zap.L().Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Internal error", nil)
}

// bindPayload decodes and validates the request body. On error nothing has
// been written yet; the handler renders the failure and returns.
func bindPayload(c echo.Context, payload interface{}) error {
	if err := c.Bind(payload); err != nil {
		return err
	}
	return c.Validate(payload)
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// parseDate accepts the usual date spellings (2024-01-15, 01/15/2024, RFC 3339)
// and returns the calendar date in UTC
func parseDate(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return domain.DateOf(t), nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func getApp(c echo.Context) app.AppContext {
	return webserver.GetApp(c)
}

func actorOf(c echo.Context) domain.Actor {
	return webserver.GetActor(c)
}
