package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/coolguy173/focus-app1/internal/domain"
	apperrors "github.com/coolguy173/focus-app1/internal/errors"
)

func (s *Server) registerAuthRoutes(csrfMiddleware, rateLimiter echo.MiddlewareFunc) {
	s.echo.GET("/signup", s.handleSignupPage, rateLimiter, csrfMiddleware)
	s.echo.POST("/signup", s.handleSignup, rateLimiter, csrfMiddleware)
	s.echo.GET("/login", s.handleLoginPage, rateLimiter, csrfMiddleware)
	s.echo.POST("/login", s.handleLogin, rateLimiter, csrfMiddleware)
	s.echo.POST("/logout", s.handleLogout, rateLimiter, s.requireAuth, csrfMiddleware)
}

func (s *Server) handleLanding(c echo.Context) error {
	if s.isAuthenticated(c) {
		if err := c.Redirect(http.StatusFound, "/dashboard"); err != nil {
			return fmt.Errorf("failed to redirect: %w", err)
		}
		return nil
	}
	if err := c.Redirect(http.StatusFound, "/login"); err != nil {
		return fmt.Errorf("failed to redirect: %w", err)
	}
	return nil
}

func (s *Server) handleSignupPage(c echo.Context) error {
	if s.isAuthenticated(c) {
		if err := c.Redirect(http.StatusFound, "/dashboard"); err != nil {
			return fmt.Errorf("failed to redirect: %w", err)
		}
		return nil
	}
	data := map[string]any{
		"CSRFToken": c.Get("csrf"),
		"Error":     "",
		"Username":  "",
	}
	return s.renderTemplate(c, "signup.html", data)
}

func (s *Server) handleSignup(c echo.Context) error {
	ctx := c.Request().Context()

	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	user, err := s.app.Signup(ctx, username, password)
	if errors.Is(err, domain.ErrUsernameTaken) {
		data := map[string]any{
			"CSRFToken": c.Get("csrf"),
			"Error":     "That username is already taken",
			"Username":  username,
		}
		return s.renderTemplateStatus(c, http.StatusConflict, "signup.html", data)
	}
	if err != nil {
		structured := apperrors.AsStructuredError(err)
		if structured.Type != apperrors.TypeValidation {
			return err
		}
		data := map[string]any{
			"CSRFToken": c.Get("csrf"),
			"Error":     structured.Message,
			"Username":  username,
		}
		return s.renderTemplateStatus(c, http.StatusBadRequest, "signup.html", data)
	}

	if err := s.startSession(c, user.ID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "User signed up", "user_id", user.ID, "username", user.Username)

	if err := c.Redirect(http.StatusSeeOther, "/dashboard"); err != nil {
		return fmt.Errorf("failed to redirect: %w", err)
	}
	return nil
}

func (s *Server) handleLoginPage(c echo.Context) error {
	if s.isAuthenticated(c) {
		if err := c.Redirect(http.StatusFound, "/dashboard"); err != nil {
			return fmt.Errorf("failed to redirect: %w", err)
		}
		return nil
	}
	data := map[string]any{
		"CSRFToken": c.Get("csrf"),
		"Error":     "",
		"Username":  "",
	}
	return s.renderTemplate(c, "login.html", data)
}

func (s *Server) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	user, err := s.app.Login(ctx, username, password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		data := map[string]any{
			"CSRFToken": c.Get("csrf"),
			"Error":     "Invalid username or password",
			"Username":  username,
		}
		return s.renderTemplateStatus(c, http.StatusUnauthorized, "login.html", data)
	}
	if err != nil {
		return apperrors.InternalError("failed to log in", err)
	}

	if err := s.startSession(c, user.ID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "User logged in", "user_id", user.ID, "username", user.Username)

	if err := c.Redirect(http.StatusSeeOther, "/dashboard"); err != nil {
		return fmt.Errorf("failed to redirect: %w", err)
	}
	return nil
}

func (s *Server) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("userID").(uuid.UUID)

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.Error("Failed to get session during logout", "error", err)
		session, err = s.sessionStore.New(c.Request(), sessionName)
		if err != nil {
			return apperrors.InternalError("failed to create new session during logout", err)
		}
	}
	session.Options.MaxAge = -1

	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("failed to save logout session", err)
	}

	slog.InfoContext(ctx, "User logged out", "user_id", userID)

	if err := c.Redirect(http.StatusSeeOther, "/login"); err != nil {
		return fmt.Errorf("failed to redirect: %w", err)
	}
	return nil
}

// startSession regenerates the session after authentication so a session ID
// fixated before login cannot be reused afterwards.
func (s *Server) startSession(c echo.Context, userID uuid.UUID) error {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err == nil {
		session.Options.MaxAge = -1
		if err := session.Save(c.Request(), c.Response().Writer); err != nil {
			return apperrors.InternalError("failed to invalidate old session", err)
		}
	}

	session, err = s.sessionStore.New(c.Request(), sessionName)
	if err != nil {
		return apperrors.InternalError("failed to create new session", err)
	}

	session.Values[sessionKeyUserID] = userID.String()
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("failed to save session", err)
	}
	return nil
}

// requireAuth guards browser pages. Requests without a valid session are
// redirected to the login page.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := s.sessionUserID(c)
		if !ok {
			return c.Redirect(http.StatusFound, "/login")
		}

		// Verify the user still exists (handles wiped DB, deleted accounts).
		if _, err := s.app.GetUserByID(c.Request().Context(), userID); err != nil {
			slog.Warn("Session references unknown user, invalidating", "user_id", userID)
			s.clearSession(c)
			return c.Redirect(http.StatusFound, "/login")
		}

		c.Set("userID", userID)
		return next(c)
	}
}

// requireAuthAPI guards the JSON API. Requests without a valid session get a
// 401 instead of a redirect.
func (s *Server) requireAuthAPI(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := s.sessionUserID(c)
		if !ok {
			return apperrors.UnauthorizedError("login required")
		}

		if _, err := s.app.GetUserByID(c.Request().Context(), userID); err != nil {
			s.clearSession(c)
			return apperrors.UnauthorizedError("login required")
		}

		c.Set("userID", userID)
		return next(c)
	}
}

func (s *Server) isAuthenticated(c echo.Context) bool {
	userID, ok := s.sessionUserID(c)
	if !ok {
		return false
	}
	_, err := s.app.GetUserByID(c.Request().Context(), userID)
	return err == nil
}

func (s *Server) sessionUserID(c echo.Context) (uuid.UUID, bool) {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		return uuid.Nil, false
	}
	userIDStr, ok := session.Values[sessionKeyUserID].(string)
	if !ok {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

func (s *Server) clearSession(c echo.Context) {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		return
	}
	session.Options.MaxAge = -1
	_ = session.Save(c.Request(), c.Response().Writer)
}
