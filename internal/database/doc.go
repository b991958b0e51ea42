// Package database provides PostgreSQL connectivity and repositories.
//
// Uses pgx for connection pooling and ships its schema migration inline.
// UserRepo implements domain.UserRepository.
package database
