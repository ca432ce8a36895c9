package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/coinbasev1/database"
	"github.com/thrasher-corp/coinbasev1/encoding/json"
	"github.com/thrasher-corp/coinbasev1/oauth"
)

func writeConfig(t *testing.T, c *Config) string {
	t.Helper()
	payload, err := json.Marshal(c)
	require.NoError(t, err, "Marshal must not error")
	path := filepath.Join(t.TempDir(), File)
	require.NoError(t, os.WriteFile(path, payload, 0o600), "WriteFile must not error")
	return path
}

func TestCheckConfigDefaults(t *testing.T) {
	c := &Config{DataDirectory: t.TempDir()}
	require.NoError(t, c.CheckConfig(), "CheckConfig must not error")

	assert.Equal(t, defaultName, c.Name)
	assert.Equal(t, DefaultAPIURL, c.Client.APIURL)
	assert.Equal(t, defaultHTTPTimeout, c.Client.HTTPTimeout)
	assert.Equal(t, oauth.DefaultTokenURL, c.OAuth.TokenURL)
	assert.Equal(t, oauth.DefaultAuthorizeURL, c.OAuth.AuthorizeURL)
	assert.Equal(t, PersistenceFile, c.OAuth.Persistence.Driver)
	assert.Equal(t, filepath.Join(c.DataDirectory, defaultTokenFile), c.OAuth.Persistence.Path)
	assert.Equal(t, defaultTokenID, c.OAuth.Persistence.TokenID)
	assert.Equal(t, database.DBSQLite3, c.Database.Driver)
	assert.Equal(t, defaultSQLiteDatabase, c.Database.Database)
	require.NotNil(t, c.Logging.Enabled)
	assert.True(t, *c.Logging.Enabled)
	assert.DirExists(t, filepath.Join(c.DataDirectory, "logs"))
}

func TestCheckClientConfig(t *testing.T) {
	t.Parallel()
	c := &Config{Client: ClientConfig{RecordsPerPage: -1}}
	assert.ErrorIs(t, c.CheckClientConfig(), errNegativeRecordsPerPage)

	c = &Config{Client: ClientConfig{APIURL: "http://localhost/api/v1/", HTTPTimeout: time.Second}}
	require.NoError(t, c.CheckClientConfig(), "CheckClientConfig must not error")
	assert.Equal(t, "http://localhost/api/v1/", c.Client.APIURL)
	assert.Equal(t, time.Second, c.Client.HTTPTimeout)
}

func TestCheckOAuthConfig(t *testing.T) {
	t.Parallel()
	c := &Config{OAuth: OAuthConfig{Persistence: PersistenceConfig{Driver: "redis"}}}
	assert.ErrorIs(t, c.CheckOAuthConfig(), errUnsupportedPersistence)

	c = &Config{OAuth: OAuthConfig{Persistence: PersistenceConfig{Driver: "SQLite3"}}}
	assert.ErrorIs(t, c.CheckOAuthConfig(), errPersistenceNeedsDatabase, "database must be enabled")

	c.Database = database.Config{Enabled: true, Driver: database.DBPostgreSQL}
	assert.ErrorIs(t, c.CheckOAuthConfig(), errPersistenceNeedsDatabase, "database driver must match")

	c.Database.Driver = database.DBSQLite3
	require.NoError(t, c.CheckOAuthConfig(), "CheckOAuthConfig must not error")
	assert.Equal(t, PersistenceSQLite, c.OAuth.Persistence.Driver, "driver should be normalised")
}

func TestCheckDatabaseConfig(t *testing.T) {
	t.Parallel()
	c := &Config{DataDirectory: t.TempDir(), Database: database.Config{Enabled: true, Driver: "mysql", Database: "x"}}
	assert.ErrorIs(t, c.checkDatabaseConfig(), database.ErrUnsupportedDriver)
	assert.False(t, c.Database.Enabled, "unsupported drivers should disable the database")

	c.Database = database.Config{Enabled: true, Driver: database.DBSQLite3, Database: "test.db"}
	require.NoError(t, c.checkDatabaseConfig(), "checkDatabaseConfig must not error")
	assert.DirExists(t, filepath.Join(c.DataDirectory, "database"))
}

func TestReadConfigFromFile(t *testing.T) {
	t.Parallel()
	c := &Config{}
	assert.ErrorIs(t, c.ReadConfigFromFile(filepath.Join(t.TempDir(), "missing.json")), errConfigFileNotFound)

	path := writeConfig(t, &Config{
		Name:   "test",
		OAuth:  OAuthConfig{ClientID: "id", ClientSecret: "secret", Scopes: []string{"user", "balance"}},
		Client: ClientConfig{RecordsPerPage: 50},
	})
	require.NoError(t, c.ReadConfigFromFile(path), "ReadConfigFromFile must not error")
	assert.Equal(t, "test", c.Name)
	assert.Equal(t, "secret", c.OAuth.ClientSecret)
	assert.Equal(t, []string{"user", "balance"}, c.OAuth.Scopes)
	assert.Equal(t, 50, c.Client.RecordsPerPage)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("CBV1_OAUTH_CLIENTSECRET", "env-secret")
	t.Setenv("CBV1_CLIENT_HTTPTIMEOUT", "30s")
	t.Setenv("CBV1_CLIENT_VERBOSE", "true")
	t.Setenv("CBV1_DATABASE_PORT", "5433")
	t.Setenv("CBV1_OAUTH_PERSISTENCE_DRIVER", "postgres")

	path := writeConfig(t, &Config{
		Name:  "test",
		OAuth: OAuthConfig{ClientID: "id", ClientSecret: "file-secret"},
	})
	c := &Config{}
	require.NoError(t, c.ReadConfigFromFile(path), "ReadConfigFromFile must not error")
	assert.Equal(t, "test", c.Name, "unset variables should not override")
	assert.Equal(t, "id", c.OAuth.ClientID)
	assert.Equal(t, "env-secret", c.OAuth.ClientSecret)
	assert.Equal(t, 30*time.Second, c.Client.HTTPTimeout)
	assert.True(t, c.Client.Verbose)
	assert.Equal(t, uint16(5433), c.Database.Port)
	assert.Equal(t, PersistencePostgres, c.OAuth.Persistence.Driver)
}

func TestEncryptedConfig(t *testing.T) {
	t.Setenv("CBV1_CONFIG_PASSPHRASE", "correct horse battery staple")

	dir := t.TempDir()
	path := filepath.Join(dir, EncryptedFile)
	c := &Config{Name: "sealed", EncryptConfig: true, OAuth: OAuthConfig{ClientSecret: "secret"}}
	require.NoError(t, c.SaveConfigToFile(path), "SaveConfigToFile must not error")

	data, err := os.ReadFile(path)
	require.NoError(t, err, "ReadFile must not error")
	assert.True(t, IsEncrypted(data))
	assert.NotContains(t, string(data), "secret")

	loaded := &Config{}
	require.NoError(t, loaded.ReadConfigFromFile(path), "ReadConfigFromFile must not error")
	assert.Equal(t, "sealed", loaded.Name)
	assert.Equal(t, "secret", loaded.OAuth.ClientSecret)

	t.Setenv("CBV1_CONFIG_PASSPHRASE", "")
	require.NoError(t, loaded.SaveConfigToFile(path), "a config read with a passphrase should save without one")

	_, _, err = ReadConfig(bytes.NewReader(data), envPassphrase)
	assert.ErrorIs(t, err, errPassphraseRequired)
}

func TestSave(t *testing.T) {
	t.Parallel()
	c := &Config{Name: "plain"}
	var buf bytes.Buffer
	require.NoError(t, c.Save(&buf, nil), "Save must not error")
	assert.False(t, IsEncrypted(buf.Bytes()))

	read, wasEncrypted, err := ReadConfig(&buf, nil)
	require.NoError(t, err, "ReadConfig must not error")
	assert.False(t, wasEncrypted)
	assert.Equal(t, "plain", read.Name)
}

func TestGetDataPath(t *testing.T) {
	t.Parallel()
	c := &Config{DataDirectory: "/data"}
	assert.Equal(t, filepath.Join("/data", "logs", "log.txt"), c.GetDataPath("logs", "log.txt"))
	c.DataDirectory = ""
	assert.NotEmpty(t, c.GetDataPath())
}
