package database

import (
	"homeledger/internal/config"
)

// Config holds database connection settings
type Config struct {
	Driver        string
	DSN           string
	MigrateURL    string
	MigrationsDir string
}

// NewConfig derives the database settings from the application configuration.
// SQLite databases are created from the record definitions; Postgres schemas
// come from the SQL files in migrationsDir.
func NewConfig(cfg *config.Config, migrationsDir string) *Config {
	if cfg.DBDriver == config.DriverPostgres {
		return &Config{
			Driver:        config.DriverPostgres,
			DSN:           cfg.PostgresDSN(),
			MigrateURL:    cfg.PostgresURL(),
			MigrationsDir: migrationsDir,
		}
	}
	return &Config{
		Driver: config.DriverSQLite,
		DSN:    cfg.SQLitePath,
	}
}
