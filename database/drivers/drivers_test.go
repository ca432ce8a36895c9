package drivers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/coinbasev1/database"
)

func TestConnect(t *testing.T) {
	t.Parallel()
	_, err := Connect(nil, "")
	assert.ErrorIs(t, err, database.ErrDatabaseSupportDisabled)
	_, err = Connect(&database.Config{Driver: database.DBSQLite3}, "")
	assert.ErrorIs(t, err, database.ErrDatabaseSupportDisabled)
	_, err = Connect(&database.Config{Enabled: true, Driver: "mongodb", Database: "x"}, "")
	assert.ErrorIs(t, err, database.ErrUnsupportedDriver)
	_, err = Connect(&database.Config{Enabled: true, Driver: database.DBSQLite3}, "")
	assert.ErrorIs(t, err, database.ErrNoDatabaseProvided)

	dir := t.TempDir()
	i, err := Connect(&database.Config{Enabled: true, Driver: database.DBSQLite3, Database: "tokens.db"}, dir)
	require.NoError(t, err)
	assert.True(t, i.IsConnected())
	require.NoError(t, i.Ping())
	assert.Equal(t, dir, i.DataPath)
	require.NoError(t, i.CloseConnection())
}
