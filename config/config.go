package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the process reads from its environment.
// Every field has a development default so a bare `go run ./cmd` works
// against a local database.
type Config struct {
	Port int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     int
}

func Load() Config {
	return Config{
		Port:       envInt("PORT", 1234),
		DBHost:     env("DB_HOST", "localhost"),
		DBUser:     env("DB_USER", "postgres"),
		DBPassword: env("DB_PASSWORD", "test"),
		DBName:     env("DB_NAME", "moviesdb"),
		DBPort:     envInt("DB_PORT", 5432),
	}
}

// DSN builds the PostgreSQL connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
