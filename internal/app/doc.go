// Package app provides the application service layer.
//
// Orchestrates use cases: signup, login, outcome recording, leaderboard reads.
// Sits between HTTP handlers and domain repositories. Depends on domain interfaces, not concrete implementations.
package app
