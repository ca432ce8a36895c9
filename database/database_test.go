package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetConfig(t *testing.T) {
	t.Parallel()
	var i *Instance
	assert.ErrorIs(t, i.SetConfig(&Config{}), errNilInstance)

	i = &Instance{}
	assert.ErrorIs(t, i.SetConfig(nil), errNilConfig)
	require.NoError(t, i.SetConfig(&Config{Driver: DBSQLite3, Database: "tokens.db"}))

	cfg := i.GetConfig()
	require.NotNil(t, cfg)
	cfg.Database = "changed.db"
	assert.Equal(t, "tokens.db", i.GetConfig().Database)
}

func TestConnectionLifecycle(t *testing.T) {
	t.Parallel()
	i := &Instance{}
	assert.False(t, i.IsConnected())
	assert.Nil(t, i.GetSQL())
	assert.ErrorIs(t, i.Ping(), errNilSQL)
	assert.ErrorIs(t, i.SetSQLiteConnection(nil), errNilSQL)
	assert.NoError(t, i.CloseConnection())

	// sql.Open does not dial so no driver needs to be registered for this
	con := sql.OpenDB(nil)
	require.NoError(t, i.SetSQLiteConnection(con))
	assert.True(t, i.IsConnected())
	assert.Equal(t, con, i.GetSQL())
	assert.NoError(t, i.CloseConnection())
	assert.False(t, i.IsConnected())
}
