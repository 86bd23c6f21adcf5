package middleware

import (
	"context"
	"net/http"
	"strings"

	"freightquote/internal/model"
	"freightquote/pkg/jwtutil"
	"freightquote/pkg/logger"
	"freightquote/prometheus"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionName is the cookie under which the session id travels
const SessionName = "freightquote_session"

// UserStore is the slice of the persistence layer the auth middleware needs
// to resolve a session back into a user record.
type UserStore interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// Auth resolves a single authenticated identity per request: a valid session
// is tried first, then a bearer token from the Authorization header. Either
// one is sufficient; with neither, the request is rejected. The resolved
// identity (user_id, username, role) is stored in the echo context and
// consumed uniformly by all handlers.
func Auth(users UserStore, sessionStore sessions.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)
			prometheus.AuthAttemptsCounter.Inc()

			// 1) Session cookie
			if sess, err := sessionStore.Get(c.Request(), SessionName); err == nil && !sess.IsNew {
				if id, ok := sess.Values["user_id"].(uint); ok {
					if user, err := users.GetUser(c.Request().Context(), id); err == nil {
						setIdentity(c, user.ID, user.Username, user.Role)
						prometheus.AuthSuccessCounter.Inc()
						return next(c)
					}
				}
			}

			// 2) Bearer token
			tokenString := c.Request().Header.Get("Authorization")
			if tokenString == "" {
				log.Warn("Missing session and authorization token")
				prometheus.AuthErrorsCounter.Inc()
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
			}
			if len(tokenString) > 7 && strings.ToUpper(tokenString[0:7]) == "BEARER " {
				tokenString = tokenString[7:]
			}

			claims, err := jwtutil.ValidateToken(tokenString)
			if err != nil {
				log.Warn("Invalid token", zap.Error(err))
				prometheus.AuthErrorsCounter.Inc()
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}

			setIdentity(c, claims.UserID, claims.Username, claims.Role)
			prometheus.AuthSuccessCounter.Inc()
			return next(c)
		}
	}
}

// RequireRole rejects authenticated requests whose role is not in the allow
// list. Role failures are surfaced the same as auth failures.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			logger.FromContext(c).Warn("Role not allowed for route", zap.String("role", role))
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
		}
	}
}

func setIdentity(c echo.Context, userID uint, username, role string) {
	c.Set("user_id", userID)
	c.Set("username", username)
	c.Set("role", role)

	log := logger.FromContext(c).With(
		zap.Uint("user_id", userID),
		zap.String("username", username),
		zap.String("role", role),
	)
	c.Set("logger", log)
}
