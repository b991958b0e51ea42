// Package redis implements Redis-backed caches.
//
// Provides LeaderboardCache (JSON blob with TTL) and a metrics hook that
// instruments every command issued through the client.
package redis
