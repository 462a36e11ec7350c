package webapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/estatehub/internal/account"
	"github.com/talkincode/estatehub/internal/domain"
	"github.com/talkincode/estatehub/internal/webserver"
	"go.uber.org/zap"
)

type registerPayload struct {
	Email    string `json:"email" validate:"required,max=100"`
	FullName string `json:"full_name" validate:"required,max=200"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *domain.Account `json:"account"`
}

func registerAuthRoutes() {
	webserver.PublicPOST("/auth/register", register)
	webserver.PublicPOST("/auth/login", login)
	webserver.PublicPOST("/auth/logout", logout)
}

func register(c echo.Context) error {
	var payload registerPayload
	if err := bindPayload(c, &payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
	}
	a, err := getApp(c).Accounts().Register(c.Request().Context(), account.Registration{
		Email:    payload.Email,
		FullName: payload.FullName,
		Password: payload.Password,
		Role:     domain.Role(payload.Role),
	})
	if err != nil {
		return handleError(c, err)
	}
	return created(c, a)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := bindPayload(c, &payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
	}
	a, err := getApp(c).Accounts().Authenticate(c.Request().Context(), payload.Email, payload.Password)
	if err != nil {
		return handleError(c, err)
	}

	cfg := getApp(c).Config().Web
	expire := time.Duration(cfg.JwtExpire) * time.Hour
	if expire <= 0 {
		expire = 24 * time.Hour
	}
	token, err := webserver.CreateToken(cfg.Secret, a.Actor(), expire)
	if err != nil {
		return handleError(c, err)
	}
	if err := webserver.SaveSessionActor(c, a.Actor()); err != nil {
		zap.L().Warn("failed to save session", zap.String("email", a.Email), zap.Error(err))
	}
	return ok(c, loginResult{Token: token, ExpiresAt: time.Now().Add(expire), Account: a})
}

func logout(c echo.Context) error {
	if err := webserver.ClearSession(c); err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to clear session", err.Error())
	}
	return ok(c, map[string]bool{"logged_out": true})
}
