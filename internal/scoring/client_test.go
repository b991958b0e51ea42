package scoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolguy173/focus-app1/internal/domain"
)

func newScoringServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var lossReports atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("username") == "alice" && r.FormValue("password") == "hunter22" {
			http.SetCookie(w, &http.Cookie{Name: "focusbattle_session", Value: "tok"})
			w.Header().Set("Location", "/dashboard")
			w.WriteHeader(http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	requireSession := func(r *http.Request) bool {
		cookie, err := r.Cookie("focusbattle_session")
		return err == nil && cookie.Value == "tok"
	}
	mux.HandleFunc("POST /api/session/win", func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"wins":5,"losses":2,"streak":3}`))
	})
	mux.HandleFunc("POST /api/session/loss", func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		lossReports.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"wins":5,"losses":3,"streak":0}`))
	})
	mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"wins":5,"losses":2,"streak":3}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &lossReports
}

func newLoggedInClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := NewClient(serverURL)
	require.NoError(t, err)
	require.NoError(t, client.Login(context.Background(), "alice", "hunter22"))
	return client
}

func TestLogin_Success(t *testing.T) {
	server, _ := newScoringServer(t)

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	err = client.Login(context.Background(), "alice", "hunter22")
	assert.NoError(t, err)
}

func TestLogin_BadCredentials(t *testing.T) {
	server, _ := newScoringServer(t)

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	err = client.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrLoginFailed)
}

func TestReportWin_CarriesSessionCookie(t *testing.T) {
	server, _ := newScoringServer(t)
	client := newLoggedInClient(t, server.URL)

	stats, err := client.ReportWin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Wins: 5, Losses: 2, Streak: 3}, stats)
}

func TestReportWin_WithoutLoginFails(t *testing.T) {
	server, _ := newScoringServer(t)

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.ReportWin(context.Background())
	assert.ErrorIs(t, err, ErrReportFailed)
}

func TestReportLoss(t *testing.T) {
	server, lossReports := newScoringServer(t)
	client := newLoggedInClient(t, server.URL)

	stats, err := client.ReportLoss(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Streak)
	assert.Equal(t, int64(1), lossReports.Load())
}

func TestReport_ServerErrorNormalizedToReportFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.ReportWin(context.Background())
	assert.ErrorIs(t, err, ErrReportFailed)
}

func TestReport_UnreachableServerNormalizedToReportFailed(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = client.ReportLoss(context.Background())
	assert.ErrorIs(t, err, ErrReportFailed)
}

func TestReport_MalformedBodyNormalizedToReportFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.ReportWin(context.Background())
	assert.ErrorIs(t, err, ErrReportFailed)
}

func TestDispatchLoss_IgnoresCanceledParentContext(t *testing.T) {
	server, lossReports := newScoringServer(t)
	client := newLoggedInClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client.DispatchLoss(ctx)
	assert.Equal(t, int64(1), lossReports.Load())
}

func TestDispatchLoss_SwallowsServerFailure(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		client.DispatchLoss(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DispatchLoss did not return")
	}
}

func TestStats(t *testing.T) {
	server, _ := newScoringServer(t)
	client := newLoggedInClient(t, server.URL)

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Wins)
}
