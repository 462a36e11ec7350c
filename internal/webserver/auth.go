package webserver

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/talkincode/estatehub/internal/domain"
)

const (
	sessionEmail = "email"
	sessionRole  = "role"
)

// Claims carried by API tokens
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// CreateToken issues a signed token for the actor
func CreateToken(secret string, actor domain.Actor, expire time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: actor.Email,
		Role:  actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func sessionName(c echo.Context) string {
	if name := GetApp(c).Config().Web.SessionName; name != "" {
		return name
	}
	return "estatehub_session"
}

func sessionMiddleware(secret string) echo.MiddlewareFunc {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return session.Middleware(store)
}

// SaveSessionActor binds the actor to the cookie session
func SaveSessionActor(c echo.Context, actor domain.Actor) error {
	sess, err := session.Get(sessionName(c), c)
	if err != nil {
		return err
	}
	sess.Values[sessionEmail] = actor.Email
	sess.Values[sessionRole] = string(actor.Role)
	return sess.Save(c.Request(), c.Response())
}

// ClearSession drops the cookie session
func ClearSession(c echo.Context) error {
	sess, err := session.Get(sessionName(c), c)
	if err != nil {
		return err
	}
	sess.Options = &sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true}
	sess.Values = map[interface{}]interface{}{}
	return sess.Save(c.Request(), c.Response())
}

func sessionActor(c echo.Context) (domain.Actor, bool) {
	sess, err := session.Get(sessionName(c), c)
	if err != nil {
		return domain.Actor{}, false
	}
	email, _ := sess.Values[sessionEmail].(string)
	role, _ := sess.Values[sessionRole].(string)
	if email == "" || !domain.Role(role).Valid() {
		return domain.Actor{}, false
	}
	return domain.Actor{Email: email, Role: domain.Role(role)}, true
}

// jwtMiddleware is skipped when a valid cookie session already identifies the caller
func jwtMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		ContextKey: jwtCtxKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		Skipper: func(c echo.Context) bool {
			_, ok := sessionActor(c)
			return ok
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"code":    "UNAUTHORIZED",
				"message": "Login required",
			})
		},
	})
}

func resolveActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := sessionActor(c)
		if !ok {
			token, _ := c.Get(jwtCtxKey).(*jwt.Token)
			if token == nil {
				return echo.ErrUnauthorized
			}
			claims, _ := token.Claims.(*Claims)
			if claims == nil || claims.Email == "" || !claims.Role.Valid() {
				return echo.ErrUnauthorized
			}
			actor = domain.Actor{Email: claims.Email, Role: claims.Role}
		}
		c.Set(actorKey, actor)
		return next(c)
	}
}

// GetActor returns the authenticated caller
func GetActor(c echo.Context) domain.Actor {
	actor, _ := c.Get(actorKey).(domain.Actor)
	return actor
}
