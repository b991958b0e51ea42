package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/coolguy173/focus-app1/internal/domain"
	apperrors "github.com/coolguy173/focus-app1/internal/errors"
)

func (s *Server) registerAPIRoutes(rateLimiter echo.MiddlewareFunc) {
	s.echo.POST("/api/session/win", s.handleSessionWin, rateLimiter, s.requireAuthAPI)
	s.echo.POST("/api/session/loss", s.handleSessionLoss, rateLimiter, s.requireAuthAPI)
	s.echo.GET("/api/stats", s.handleStats, rateLimiter, s.requireAuthAPI)
}

func (s *Server) handleSessionWin(c echo.Context) error {
	return s.recordOutcome(c, domain.OutcomeWin)
}

func (s *Server) handleSessionLoss(c echo.Context) error {
	return s.recordOutcome(c, domain.OutcomeLoss)
}

func (s *Server) recordOutcome(c echo.Context, outcome domain.Outcome) error {
	ctx := c.Request().Context()

	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return apperrors.InternalError("invalid user ID in context", nil)
	}

	stats, err := s.app.RecordOutcome(ctx, userID, outcome)
	if errors.Is(err, domain.ErrUserNotFound) {
		return apperrors.NotFoundError("user not found").WithField("user_id", userID.String())
	}
	if err != nil {
		return apperrors.InternalError("failed to record outcome", err).
			WithField("user_id", userID.String()).
			WithField("outcome", string(outcome))
	}

	response := struct {
		Status string `json:"status"`
		domain.Stats
	}{Status: string(outcome), Stats: stats}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleStats(c echo.Context) error {
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

	response := struct {
		Username string `json:"username"`
		domain.Stats
	}{Username: user.Username, Stats: user.Stats}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
