package server

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/coolguy173/focus-app1/internal/domain"
	apperrors "github.com/coolguy173/focus-app1/internal/errors"
)

func (s *Server) registerDashboardRoutes(csrfMiddleware echo.MiddlewareFunc) {
	s.echo.GET("/dashboard", s.handleDashboard, s.requireAuth, csrfMiddleware)
	s.echo.GET("/leaderboard", s.handleLeaderboard, s.requireAuth)
}

func (s *Server) handleDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return apperrors.InternalError("invalid user ID in context", nil)
	}

	user, err := s.app.GetUserByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return apperrors.NotFoundError("user not found").WithField("user_id", userID.String())
	}
	if err != nil {
		return apperrors.InternalError("failed to load user", err).WithField("user_id", userID.String())
	}

	data := map[string]any{
		"Username":  user.Username,
		"Wins":      user.Stats.Wins,
		"Losses":    user.Stats.Losses,
		"Streak":    user.Stats.Streak,
		"CSRFToken": c.Get("csrf"),
	}
	return s.renderTemplate(c, "dashboard.html", data)
}

func (s *Server) handleLeaderboard(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return apperrors.InternalError("invalid user ID in context", nil)
	}

	user, err := s.app.GetUserByID(ctx, userID)
	if err != nil {
		return apperrors.InternalError("failed to load user", err).WithField("user_id", userID.String())
	}

	entries, err := s.app.Leaderboard(ctx)
	if err != nil {
		return apperrors.InternalError("failed to load leaderboard", err)
	}

	type row struct {
		Rank     int
		Username string
		Wins     int
		Losses   int
		Streak   int
	}
	rows := make([]row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, row{
			Rank:     i + 1,
			Username: e.Username,
			Wins:     e.Wins,
			Losses:   e.Losses,
			Streak:   e.Streak,
		})
	}

	data := map[string]any{
		"Entries":  rows,
		"Username": user.Username,
	}
	return s.renderTemplate(c, "leaderboard.html", data)
}
