package database

import (
	"fmt"
	"strconv"
)

const tableName string = "entities"
const selectColumns string = "id, type, date_of_birth, eye_color, created_at, updated_at"

// Dialect captures the differences between the supported storage engines
type Dialect interface {
	Name() string
	DriverName() string
	Placeholder(index int) string
	CreateTable() string
}

func DialectFor(name string) (Dialect, error) {
	switch name {
	case "postgres", "pgx":
		return postgres{}, nil
	case "sqlite", "sqlite3":
		return sqlite{}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", name)
}

type postgres struct{}

func (postgres) Name() string       { return "postgres" }
func (postgres) DriverName() string { return "pgx" }

func (postgres) Placeholder(index int) string {
	return "$" + strconv.Itoa(index)
}

func (postgres) CreateTable() string {
	return `CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id SERIAL PRIMARY KEY,
		type TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		eye_color TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
}

type sqlite struct{}

func (sqlite) Name() string       { return "sqlite" }
func (sqlite) DriverName() string { return "sqlite" }

func (sqlite) Placeholder(int) string {
	return "?"
}

func (sqlite) CreateTable() string {
	return `CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		eye_color TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
}
