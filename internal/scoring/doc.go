// Package scoring is the HTTP client for the focusd scoring API.
//
// Authenticates with a cookie session, reports battle outcomes, and offers a
// fire-and-forget loss dispatch for shutdown paths.
package scoring
