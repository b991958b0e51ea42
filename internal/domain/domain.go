package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Outcome is the result of one focus session.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// Stats are the aggregate counters the scoring service keeps per user.
// A win increments Wins and Streak; a loss increments Losses and resets
// Streak to zero.
type Stats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Streak int `json:"streak"`
}

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Stats        Stats
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LeaderboardEntry is one row of the leaderboard, ordered by wins.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Streak   int    `json:"streak"`
}
