package sqlite

import (
	"database/sql"
	"path/filepath"

	// import sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/thrasher-corp/coinbasev1/database"
)

// Connect opens a connection to sqlite database and returns a pointer to database.Instance
func Connect(cfg *database.Config, dataPath string) (*database.Instance, error) {
	if cfg == nil || cfg.Database == "" {
		return nil, database.ErrNoDatabaseProvided
	}

	location := cfg.Database
	if location != ":memory:" {
		location = filepath.Join(dataPath, cfg.Database)
	}

	dbConn, err := sql.Open(database.DBSQLite3, location)
	if err != nil {
		return nil, err
	}

	i := &database.Instance{DataPath: dataPath}
	if err = i.SetConfig(cfg); err != nil {
		return nil, err
	}
	if err = i.SetSQLiteConnection(dbConn); err != nil {
		return nil, err
	}
	return i, nil
}
