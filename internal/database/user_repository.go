package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coolguy173/focus-app1/internal/domain"
	"github.com/coolguy173/focus-app1/internal/metrics"
)

// userColumns must match the Scan order in scanUser.
const userColumns = `id, username, password_hash, wins, losses, streak, created_at, updated_at`

// UserRepo persists user accounts and their win/loss counters in PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash,
		&user.Stats.Wins, &user.Stats.Losses, &user.Stats.Streak,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func observe(query string, start time.Time, err error) {
	metrics.DBQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		metrics.DBErrorsTotal.WithLabelValues(query).Inc()
	}
}

func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	start := time.Now()
	user, err := scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (username) DO NOTHING
		RETURNING `+userColumns,
		username, passwordHash))
	observe("create_user", start, err)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	observe("get_user_by_id", start, err)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	start := time.Now()
	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	observe("get_user_by_username", start, err)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// RecordOutcome applies a win or loss to the user's counters and returns the
// fresh stats in a single round trip. A win increments wins and streak; a loss
// increments losses and resets the streak.
func (r *UserRepo) RecordOutcome(ctx context.Context, userID uuid.UUID, outcome domain.Outcome) (domain.Stats, error) {
	query := `
		UPDATE users
		SET losses = losses + 1, streak = 0, updated_at = NOW()
		WHERE id = $1
		RETURNING wins, losses, streak
	`
	if outcome == domain.OutcomeWin {
		query = `
			UPDATE users
			SET wins = wins + 1, streak = streak + 1, updated_at = NOW()
			WHERE id = $1
			RETURNING wins, losses, streak
		`
	}

	start := time.Now()
	var stats domain.Stats
	err := r.pool.QueryRow(ctx, query, userID).Scan(&stats.Wins, &stats.Losses, &stats.Streak)
	observe("record_outcome", start, err)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Stats{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.Stats{}, fmt.Errorf("failed to record outcome: %w", err)
	}
	return stats, nil
}

func (r *UserRepo) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx, `
		SELECT username, wins, losses, streak
		FROM users
		ORDER BY wins DESC, username ASC
		LIMIT $1
	`, limit)
	observe("leaderboard", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Wins, &e.Losses, &e.Streak); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard rows: %w", err)
	}

	return entries, nil
}
