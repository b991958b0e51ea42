package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository is the persistence port for user accounts and counters.
type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	RecordOutcome(ctx context.Context, userID uuid.UUID, outcome Outcome) (Stats, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}
