package handler

import (
	"errors"
	"net/http"
	"strings"

	"freightquote/internal/middleware"
	"freightquote/internal/model"
	"freightquote/internal/storage"
	"freightquote/pkg/jwtutil"
	"freightquote/pkg/logger"
	"freightquote/pkg/password"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Register creates a new user account and establishes a session
func (h *Handler) Register(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Nome     string `json:"nome"` // accepted alias used by the pt-BR frontend
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username is required"})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "password is required"})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSpace(req.Nome)
	}
	if name == "" {
		name = username
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleClient
	}
	if !model.ValidRole(role) {
		log.Warn("Rejected unknown role at registration", zap.String("role", role))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown role"})
	}

	if _, err := h.Store.GetUserByUsername(c.Request().Context(), username); err == nil {
		log.Warn("Username already exists", zap.String("username", username))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username already exists"})
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Error("Failed to check existing user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "registration failed"})
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "registration failed"})
	}

	user := model.User{
		Username: username,
		Password: hashed,
		Name:     name,
		Role:     role,
	}
	if err := h.Store.CreateUser(c.Request().Context(), &user); err != nil {
		log.Error("Failed to create user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "registration failed"})
	}

	if err := h.establishSession(c, user.ID); err != nil {
		log.Error("Failed to establish session", zap.Error(err))
	}

	log.Info("User registered", zap.String("username", user.Username), zap.String("role", user.Role))
	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials, establishes a session and issues a bearer
// token usable as an alternative to the cookie.
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	user, err := h.Store.GetUserByUsername(c.Request().Context(), strings.TrimSpace(req.Username))
	if err != nil {
		log.Warn("User not found", zap.String("username", req.Username))
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
	}

	ok, err := password.Verify(req.Password, user.Password)
	if err != nil || !ok {
		log.Warn("Invalid password", zap.String("username", req.Username))
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "token error"})
	}

	if err := h.establishSession(c, user.ID); err != nil {
		log.Error("Failed to establish session", zap.Error(err))
	}

	log.Info("User logged in", zap.String("username", user.Username), zap.String("role", user.Role))
	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"token": token,
	})
}

// Logout terminates the session. Outstanding bearer tokens stay valid until
// their natural expiry; there is no revocation list.
func (h *Handler) Logout(c echo.Context) error {
	sess, err := h.Sessions.Get(c.Request(), middleware.SessionName)
	if err == nil {
		sess.Options.MaxAge = -1
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			logger.FromContext(c).Error("Failed to destroy session", zap.Error(err))
		}
	}
	return c.NoContent(http.StatusOK)
}

// CurrentUser returns the sanitized record for the authenticated identity
func (h *Handler) CurrentUser(c echo.Context) error {
	id, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}
	user, err := h.Store.GetUser(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) establishSession(c echo.Context, userID uint) error {
	sess, err := h.Sessions.Get(c.Request(), middleware.SessionName)
	if err != nil {
		// A stale or tampered cookie still yields a fresh session
		if sess == nil {
			return err
		}
	}
	sess.Options.Path = "/"
	sess.Options.HttpOnly = true
	sess.Values["user_id"] = userID
	return sess.Save(c.Request(), c.Response())
}
