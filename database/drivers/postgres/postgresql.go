package postgres

import (
	"database/sql"
	"fmt"

	// import postgres driver
	_ "github.com/lib/pq"
	"github.com/thrasher-corp/coinbasev1/database"
)

// DSN returns the connection string for cfg
func DSN(cfg *database.Config) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Database,
		sslMode)
}

// Connect opens a connection to a postgres database and verifies it with a ping
func Connect(cfg *database.Config) (*database.Instance, error) {
	if cfg == nil || cfg.Database == "" {
		return nil, database.ErrNoDatabaseProvided
	}

	dbConn, err := sql.Open(database.DBPostgreSQL, DSN(cfg))
	if err != nil {
		return nil, err
	}

	i := &database.Instance{}
	if err = i.SetConfig(cfg); err != nil {
		return nil, err
	}
	if err = i.SetPostgresConnection(dbConn); err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	return i, nil
}
