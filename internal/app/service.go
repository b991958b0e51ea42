package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"

	"github.com/coolguy173/focus-app1/internal/domain"
	apperrors "github.com/coolguy173/focus-app1/internal/errors"
	"github.com/coolguy173/focus-app1/internal/metrics"
)

// LeaderboardLimit is the number of rows the leaderboard shows.
const LeaderboardLimit = 20

const (
	minUsernameLen = 3
	maxUsernameLen = 32
	minPasswordLen = 6
)

// leaderboardCache is the optional best-effort cache in front of the
// leaderboard query. A nil cache disables caching entirely.
type leaderboardCache interface {
	Get(ctx context.Context) ([]domain.LeaderboardEntry, bool)
	Set(ctx context.Context, entries []domain.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	users domain.UserRepository
	cache leaderboardCache

	leaderboardGroup singleflight.Group
}

func NewService(users domain.UserRepository, cache leaderboardCache) *Service {
	return &Service{users: users, cache: cache}
}

// ValidateCredentials checks signup input before it reaches the database.
func ValidateCredentials(username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}
	if len(username) < minUsernameLen {
		return fmt.Errorf("username must be at least %d characters", minUsernameLen)
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("username exceeds %d characters", maxUsernameLen)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

// Signup creates a new account with a bcrypt password hash.
func (s *Service) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if err := ValidateCredentials(username, password); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return nil, apperrors.ValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalError("failed to hash password", err)
	}

	user, err := s.users.Create(ctx, username, string(hash))
	if errors.Is(err, domain.ErrUsernameTaken) {
		metrics.SignupsTotal.WithLabelValues("taken").Inc()
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	return user, nil
}

// Login verifies a username/password pair. Unknown users and wrong passwords
// both map to ErrInvalidCredentials so callers cannot probe for accounts.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrUserNotFound) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, nil
}

func (s *Service) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// RecordOutcome applies a win or loss to the user's counters and returns the
// updated stats. The leaderboard cache is invalidated best-effort.
func (s *Service) RecordOutcome(ctx context.Context, userID uuid.UUID, outcome domain.Outcome) (domain.Stats, error) {
	stats, err := s.users.RecordOutcome(ctx, userID, outcome)
	if err != nil {
		metrics.OutcomeRecordFailures.Inc()
		return domain.Stats{}, err
	}

	metrics.OutcomesRecorded.WithLabelValues(string(outcome)).Inc()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			slog.Warn("Failed to invalidate leaderboard cache", "error", err)
		}
	}

	return stats, nil
}

// Leaderboard returns the top users by wins, served from the cache when warm.
// Uses singleflight to collapse concurrent database reads on a cold cache.
func (s *Service) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if s.cache != nil {
		if entries, ok := s.cache.Get(ctx); ok {
			return entries, nil
		}
	}

	result, err, _ := s.leaderboardGroup.Do("leaderboard", func() (any, error) {
		entries, err := s.users.Leaderboard(ctx, LeaderboardLimit)
		if err != nil {
			return nil, err
		}
		metrics.LeaderboardCacheFallbacks.Inc()

		if s.cache != nil {
			if err := s.cache.Set(ctx, entries); err != nil {
				slog.Warn("Failed to write leaderboard cache", "error", err)
			}
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.LeaderboardEntry), nil
}
