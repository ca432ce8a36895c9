package database

import (
	"database/sql"
	"errors"
	"sync"
)

// Supported database drivers
const (
	DBSQLite3    = "sqlite3"
	DBPostgreSQL = "postgres"
)

var (
	// ErrNoDatabaseProvided is returned when no database name is configured
	ErrNoDatabaseProvided = errors.New("no database provided")
	// ErrDatabaseSupportDisabled is returned when database support is disabled
	ErrDatabaseSupportDisabled = errors.New("database support is disabled")
	// ErrUnsupportedDriver is returned for an unknown driver name
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	errNilInstance = errors.New("database instance is nil")
	errNilConfig   = errors.New("database config is nil")
	errNilSQL      = errors.New("database SQL connection is nil")
)

// Config holds the database connection settings
type Config struct {
	Enabled  bool   `json:"enabled"`
	Verbose  bool   `json:"verbose"`
	Driver   string `json:"driver"`
	Host     string `json:"host,omitempty"`
	Port     uint16 `json:"port,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Database string `json:"database"`
	SSLMode  string `json:"sslmode,omitempty"`
}

// Instance holds a database connection and its configuration
type Instance struct {
	SQL       *sql.DB
	DataPath  string
	config    *Config
	connected bool
	m         sync.RWMutex
}
