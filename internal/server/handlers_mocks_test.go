package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/coolguy173/focus-app1/internal/config"
	"github.com/coolguy173/focus-app1/internal/domain"
	apperrors "github.com/coolguy173/focus-app1/internal/errors"
)

// --- Mock implementations ---

type mockAppService struct {
	signupFn        func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn         func(ctx context.Context, username, password string) (*domain.User, error)
	getUserByIDFn   func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	recordOutcomeFn func(ctx context.Context, userID uuid.UUID, outcome domain.Outcome) (domain.Stats, error)
	leaderboardFn   func(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

func (m *mockAppService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	if m.signupFn != nil {
		return m.signupFn(ctx, username, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockAppService) RecordOutcome(ctx context.Context, userID uuid.UUID, outcome domain.Outcome) (domain.Stats, error) {
	if m.recordOutcomeFn != nil {
		return m.recordOutcomeFn(ctx, userID, outcome)
	}
	return domain.Stats{}, errors.New("not implemented")
}

func (m *mockAppService) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if m.leaderboardFn != nil {
		return m.leaderboardFn(ctx)
	}
	return nil, nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, app appService, opts ...func(*Server)) *Server {
	t.Helper()

	tmpl := template.Must(template.New("login.html").Parse(`Login {{.Error}}`))
	template.Must(tmpl.New("signup.html").Parse(`Signup {{.Error}}`))
	template.Must(tmpl.New("dashboard.html").Parse(`Dashboard {{.Username}} {{.Wins}}/{{.Losses}}/{{.Streak}}`))
	template.Must(tmpl.New("leaderboard.html").Parse(`Leaderboard{{range .Entries}} {{.Rank}}:{{.Username}}{{end}}`))

	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!!"))
	store.Options = &sessions.Options{
		Path:   "/",
		MaxAge: 3600,
	}

	e := echo.New()

	srv := &Server{
		echo:         e,
		config:       &config.Config{AppEnv: "test", Port: "8080"},
		app:          app,
		sessionStore: store,
		templates:    tmpl,
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()

	return srv
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return apperrors.Middleware()(handler)(c)
}

func setSessionUserID(t *testing.T, srv *Server, req *http.Request, rec *httptest.ResponseRecorder, userID uuid.UUID) {
	t.Helper()
	session, err := srv.sessionStore.Get(req, sessionName)
	require.NoError(t, err)
	session.Values[sessionKeyUserID] = userID.String()
	require.NoError(t, session.Save(req, rec))
}

// authenticatedContext builds an echo context whose request carries a valid
// session cookie for userID.
func authenticatedContext(t *testing.T, srv *Server, method, target string) (echo.Context, *httptest.ResponseRecorder, uuid.UUID) {
	t.Helper()
	userID := uuid.New()

	seedReq := httptest.NewRequest(http.MethodGet, "/", nil)
	seedRec := httptest.NewRecorder()
	setSessionUserID(t, srv, seedReq, seedRec, userID)

	req := httptest.NewRequest(method, target, nil)
	for _, cookie := range seedRec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	return c, rec, userID
}
