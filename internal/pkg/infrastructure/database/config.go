package database

import (
	"context"
	"fmt"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
)

type Config struct {
	driver   string
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
	path     string
}

func LoadConfiguration(ctx context.Context) Config {
	return Config{
		driver:   env.GetVariableOrDefault(ctx, "DB_DRIVER", "postgres"),
		host:     env.GetVariableOrDefault(ctx, "POSTGRES_HOST", ""),
		user:     env.GetVariableOrDefault(ctx, "POSTGRES_USER", ""),
		password: env.GetVariableOrDefault(ctx, "POSTGRES_PASSWORD", ""),
		port:     env.GetVariableOrDefault(ctx, "POSTGRES_PORT", "5432"),
		dbname:   env.GetVariableOrDefault(ctx, "POSTGRES_DBNAME", "diwise"),
		sslmode:  env.GetVariableOrDefault(ctx, "POSTGRES_SSLMODE", "disable"),
		path:     env.GetVariableOrDefault(ctx, "SQLITE_PATH", "entities.db"),
	}
}

// NewSQLiteConfig returns a configuration for an embedded database at path.
// Use ":memory:" for a private in-memory database.
func NewSQLiteConfig(path string) Config {
	return Config{driver: "sqlite", path: path}
}

func (c Config) Driver() string {
	return c.driver
}

func (c Config) ConnStr() string {
	if c.driver == "sqlite" || c.driver == "sqlite3" {
		return c.path
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}
