package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/coolguy173/focus-app1/internal/domain"
)

type mockUserRepo struct {
	createFn        func(ctx context.Context, username, passwordHash string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	recordOutcomeFn func(ctx context.Context, userID uuid.UUID, outcome domain.Outcome) (domain.Stats, error)
	leaderboardFn   func(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	return m.createFn(ctx, username, passwordHash)
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.getByIDFn(ctx, userID)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.getByUsernameFn(ctx, username)
}

func (m *mockUserRepo) RecordOutcome(ctx context.Context, userID uuid.UUID, outcome domain.Outcome) (domain.Stats, error) {
	return m.recordOutcomeFn(ctx, userID, outcome)
}

func (m *mockUserRepo) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return m.leaderboardFn(ctx, limit)
}

type fakeCache struct {
	entries     []domain.LeaderboardEntry
	warm        bool
	sets        int
	invalidates int
}

func (f *fakeCache) Get(_ context.Context) ([]domain.LeaderboardEntry, bool) {
	if !f.warm {
		return nil, false
	}
	return f.entries, true
}

func (f *fakeCache) Set(_ context.Context, entries []domain.LeaderboardEntry) error {
	f.entries = entries
	f.warm = true
	f.sets++
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context) error {
	f.entries = nil
	f.warm = false
	f.invalidates++
	return nil
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid", "alice", "hunter22", false},
		{"empty username", "", "hunter22", true},
		{"empty password", "alice", "", true},
		{"short username", "ab", "hunter22", true},
		{"short password", "alice", "12345", true},
		{"long username", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "hunter22", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.username, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSignup_HashesPassword(t *testing.T) {
	var storedHash string
	repo := &mockUserRepo{
		createFn: func(_ context.Context, username, passwordHash string) (*domain.User, error) {
			storedHash = passwordHash
			return &domain.User{ID: uuid.New(), Username: username, PasswordHash: passwordHash}, nil
		},
	}
	service := NewService(repo, nil)

	user, err := service.Signup(context.Background(), "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	assert.NotEqual(t, "hunter22", storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("hunter22")))
}

func TestSignup_TrimsUsername(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(_ context.Context, username, passwordHash string) (*domain.User, error) {
			assert.Equal(t, "alice", username)
			return &domain.User{ID: uuid.New(), Username: username}, nil
		},
	}
	service := NewService(repo, nil)

	_, err := service.Signup(context.Background(), "  alice  ", "hunter22")
	require.NoError(t, err)
}

func TestSignup_UsernameTaken(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	service := NewService(repo, nil)

	_, err := service.Signup(context.Background(), "alice", "hunter22")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Username: username, PasswordHash: string(hash)}, nil
		},
	}
	service := NewService(repo, nil)

	user, err := service.Login(context.Background(), "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Username: username, PasswordHash: string(hash)}, nil
		},
	}
	service := NewService(repo, nil)

	_, err = service.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownUserMapsToInvalidCredentials(t *testing.T) {
	repo := &mockUserRepo{
		getByUsernameFn: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	service := NewService(repo, nil)

	_, err := service.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRecordOutcome_InvalidatesCache(t *testing.T) {
	repo := &mockUserRepo{
		recordOutcomeFn: func(_ context.Context, _ uuid.UUID, outcome domain.Outcome) (domain.Stats, error) {
			assert.Equal(t, domain.OutcomeWin, outcome)
			return domain.Stats{Wins: 3, Losses: 1, Streak: 2}, nil
		},
	}
	cache := &fakeCache{warm: true, entries: []domain.LeaderboardEntry{{Username: "stale"}}}
	service := NewService(repo, cache)

	stats, err := service.RecordOutcome(context.Background(), uuid.New(), domain.OutcomeWin)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Wins: 3, Losses: 1, Streak: 2}, stats)
	assert.Equal(t, 1, cache.invalidates)
}

func TestLeaderboard_CacheHitSkipsRepository(t *testing.T) {
	repo := &mockUserRepo{
		leaderboardFn: func(_ context.Context, _ int) ([]domain.LeaderboardEntry, error) {
			t.Fatal("repository should not be queried on a cache hit")
			return nil, nil
		},
	}
	cache := &fakeCache{
		warm:    true,
		entries: []domain.LeaderboardEntry{{Username: "alice", Wins: 10}},
	}
	service := NewService(repo, cache)

	entries, err := service.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
}

func TestLeaderboard_CacheMissFallsBackAndWarms(t *testing.T) {
	queried := 0
	repo := &mockUserRepo{
		leaderboardFn: func(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
			queried++
			assert.Equal(t, LeaderboardLimit, limit)
			return []domain.LeaderboardEntry{{Username: "bob", Wins: 7}}, nil
		},
	}
	cache := &fakeCache{}
	service := NewService(repo, cache)

	entries, err := service.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, queried)
	assert.Equal(t, 1, cache.sets)

	// Second read is served from the warmed cache.
	_, err = service.Leaderboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, queried)
}

func TestLeaderboard_NilCache(t *testing.T) {
	repo := &mockUserRepo{
		leaderboardFn: func(_ context.Context, _ int) ([]domain.LeaderboardEntry, error) {
			return []domain.LeaderboardEntry{{Username: "carol", Wins: 4}}, nil
		},
	}
	service := NewService(repo, nil)

	entries, err := service.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
