// Package config provides environment-based configuration.
//
// Loads from a .env file (godotenv) when present, maps environment variables
// to the Config struct, and validates required fields.
package config
