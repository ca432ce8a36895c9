package drivers

import (
	"fmt"
	"strings"

	"github.com/thrasher-corp/coinbasev1/database"
	"github.com/thrasher-corp/coinbasev1/database/drivers/postgres"
	sqlite "github.com/thrasher-corp/coinbasev1/database/drivers/sqlite3"
	"github.com/thrasher-corp/coinbasev1/log"
)

// Connect opens the database named by cfg.Driver
func Connect(cfg *database.Config, dataPath string) (*database.Instance, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, database.ErrDatabaseSupportDisabled
	}
	var (
		i   *database.Instance
		err error
	)
	switch strings.ToLower(cfg.Driver) {
	case database.DBSQLite3, "sqlite":
		i, err = sqlite.Connect(cfg, dataPath)
	case database.DBPostgreSQL, "postgresql":
		i, err = postgres.Connect(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	log.Debugf(log.DatabaseMgr, "connected to %s database %s", cfg.Driver, cfg.Database)
	return i, nil
}
