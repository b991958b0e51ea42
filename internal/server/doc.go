// Package server implements the HTTP server using Echo framework.
//
// Routes: auth (signup/login/logout), dashboard, leaderboard, session API (win/loss/stats), health.
// Handlers split by domain: handlers_auth.go, handlers_dashboard.go, handlers_api.go, handlers_health.go.
package server
