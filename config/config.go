package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thrasher-corp/coinbasev1/common"
	"github.com/thrasher-corp/coinbasev1/common/convert"
	"github.com/thrasher-corp/coinbasev1/common/file"
	"github.com/thrasher-corp/coinbasev1/database"
	"github.com/thrasher-corp/coinbasev1/encoding/json"
	"github.com/thrasher-corp/coinbasev1/log"
	"github.com/thrasher-corp/coinbasev1/oauth"
)

// GetDataPath gets the data path for the given subpath
func (c *Config) GetDataPath(elem ...string) string {
	baseDir := c.DataDirectory
	if baseDir == "" {
		baseDir = common.DefaultDataDir()
	}
	return filepath.Join(append([]string{baseDir}, elem...)...)
}

// CheckLoggerConfig checks to see logger values are present and valid in config
// if not creates a default instance of the logger
func (c *Config) CheckLoggerConfig() error {
	if c.Logging.Enabled == nil || c.Logging.Output == "" {
		c.Logging = log.GenDefaultSettings()
	}

	if c.Logging.AdvancedSettings.ShowLogSystemName == nil {
		c.Logging.AdvancedSettings.ShowLogSystemName = convert.BoolPtr(false)
	}

	if c.Logging.LoggerFileConfig != nil {
		if c.Logging.LoggerFileConfig.FileName == "" {
			c.Logging.LoggerFileConfig.FileName = "log.txt"
		}
		if c.Logging.LoggerFileConfig.Rotate == nil {
			c.Logging.LoggerFileConfig.Rotate = convert.BoolPtr(false)
		}
		if c.Logging.LoggerFileConfig.MaxSize <= 0 {
			log.Warnf(log.ConfigMgr, "Logger rotation size invalid, defaulting to %v", log.DefaultMaxFileSize)
			c.Logging.LoggerFileConfig.MaxSize = log.DefaultMaxFileSize
		}
	}
	if err := log.SetGlobalLogConfig(&c.Logging); err != nil {
		return err
	}

	logPath := c.GetDataPath("logs")
	if err := common.CreateDir(logPath); err != nil {
		return err
	}
	log.SetLogPath(logPath)
	log.SetFileLoggingState(c.Logging.LoggerFileConfig != nil)
	return nil
}

// CheckClientConfig fills unset client settings with their defaults
func (c *Config) CheckClientConfig() error {
	if c.Client.APIURL == "" {
		c.Client.APIURL = DefaultAPIURL
	}
	if c.Client.HTTPTimeout <= 0 {
		log.Warnf(log.ConfigMgr, "HTTP timeout value not set, defaulting to %v.", defaultHTTPTimeout)
		c.Client.HTTPTimeout = defaultHTTPTimeout
	}
	if c.Client.RecordsPerPage < 0 {
		return fmt.Errorf("%w: %d", errNegativeRecordsPerPage, c.Client.RecordsPerPage)
	}
	return nil
}

// CheckOAuthConfig fills unset OAuth endpoints and validates the token
// persistence settings
func (c *Config) CheckOAuthConfig() error {
	if c.OAuth.TokenURL == "" {
		c.OAuth.TokenURL = oauth.DefaultTokenURL
	}
	if c.OAuth.AuthorizeURL == "" {
		c.OAuth.AuthorizeURL = oauth.DefaultAuthorizeURL
	}
	if c.OAuth.ClientID == "" || c.OAuth.ClientSecret == "" {
		log.Warnln(log.ConfigMgr, "OAuth client credentials unset, token requests will fail")
	}

	p := &c.OAuth.Persistence
	p.Driver = strings.ToLower(p.Driver)
	if p.Driver == "" {
		p.Driver = PersistenceFile
	}
	if p.TokenID == "" {
		p.TokenID = defaultTokenID
	}
	switch p.Driver {
	case PersistenceFile:
		if p.Path == "" {
			p.Path = c.GetDataPath(defaultTokenFile)
		}
	case PersistenceSQLite, PersistencePostgres:
		if !c.Database.Enabled || !strings.EqualFold(c.Database.Driver, p.Driver) {
			return fmt.Errorf("%w: %s", errPersistenceNeedsDatabase, p.Driver)
		}
	default:
		return fmt.Errorf("%w: %q", errUnsupportedPersistence, p.Driver)
	}
	return nil
}

func (c *Config) checkDatabaseConfig() error {
	if c.Database.Driver == "" && c.Database.Database == "" {
		c.Database.Driver = database.DBSQLite3
		c.Database.Database = defaultSQLiteDatabase
	}

	if !c.Database.Enabled {
		return nil
	}

	c.Database.Driver = strings.ToLower(c.Database.Driver)
	if !common.StringSliceContains([]string{database.DBSQLite3, database.DBPostgreSQL}, c.Database.Driver) {
		c.Database.Enabled = false
		return fmt.Errorf("%w %q, database disabled", database.ErrUnsupportedDriver, c.Database.Driver)
	}

	if c.Database.Driver == database.DBSQLite3 {
		return common.CreateDir(c.GetDataPath("database"))
	}
	return nil
}

// CheckConfig checks all config settings
func (c *Config) CheckConfig() error {
	if c.Name == "" {
		c.Name = defaultName
	}

	if err := c.CheckLoggerConfig(); err != nil {
		log.Errorf(log.ConfigMgr,
			"Failed to configure logger, some logging features unavailable: %s",
			err)
	}

	if err := c.checkDatabaseConfig(); err != nil {
		log.Errorf(log.DatabaseMgr, "Failed to configure database: %v", err)
	}

	if err := c.CheckClientConfig(); err != nil {
		return err
	}
	return c.CheckOAuthConfig()
}

// DefaultFilePath returns the default config file path, preferring an
// encrypted config when one exists
// MacOS/Linux: $HOME/.cbv1/config.json or config.dat
// Windows: %APPDATA%\CoinbaseV1\config.json or config.dat
func DefaultFilePath() string {
	dir := common.DefaultDataDir()
	if encrypted := filepath.Join(dir, EncryptedFile); file.Exists(encrypted) {
		return encrypted
	}
	return filepath.Join(dir, File)
}

// ReadConfigFromFile reads the configuration from the given file, or the
// default path when configPath is empty, then applies environment overrides.
// An encrypted file is decrypted with the CBV1_CONFIG_PASSPHRASE passphrase.
func (c *Config) ReadConfigFromFile(configPath string) error {
	if configPath == "" {
		configPath = DefaultFilePath()
	}
	if !file.Exists(configPath) {
		return fmt.Errorf("%w: %s", errConfigFileNotFound, configPath)
	}
	f, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	result, wasEncrypted, err := ReadConfig(f, envPassphrase)
	if err != nil {
		return fmt.Errorf("error reading config %s: %w", configPath, err)
	}
	*c = *result
	if wasEncrypted {
		log.Debugf(log.ConfigMgr, "decrypted config %s", configPath)
	}
	return c.applyEnvOverrides()
}

// ReadConfig loads a config from JSON, decrypting it with the key from
// keyProvider when it is encrypted. It also returns whether it was encrypted.
func ReadConfig(configReader io.Reader, keyProvider func() ([]byte, error)) (*Config, bool, error) {
	data, err := io.ReadAll(bufio.NewReader(configReader))
	if err != nil {
		return nil, false, err
	}

	c := &Config{}
	if !IsEncrypted(data) {
		return c, false, json.Unmarshal(data, c)
	}

	key, err := keyProvider()
	if err != nil {
		return nil, true, err
	}
	plain, err := DecryptConfigData(data, key)
	if err != nil {
		return nil, true, err
	}
	if err := json.Unmarshal(plain, c); err != nil {
		return nil, true, err
	}
	c.passphrase = key
	return c, true, nil
}

// SaveConfigToFile saves the configuration to configPath as a JSON object,
// encrypting it when EncryptConfig is set
func (c *Config) SaveConfigToFile(configPath string) error {
	if configPath == "" {
		configPath = DefaultFilePath()
	}
	var buf bytes.Buffer
	if err := c.Save(&buf, envPassphrase); err != nil {
		return err
	}
	return file.Write(configPath, buf.Bytes())
}

// Save writes the configuration to w, encrypted when configured
func (c *Config) Save(w io.Writer, keyProvider func() ([]byte, error)) error {
	payload, err := json.MarshalIndent(c, "", " ")
	if err != nil {
		return err
	}

	if c.EncryptConfig {
		if len(c.passphrase) == 0 {
			key, err := keyProvider()
			if err != nil {
				return err
			}
			c.passphrase = key
		}
		payload, err = EncryptConfigData(payload, c.passphrase)
		if err != nil {
			return err
		}
	}
	_, err = io.Copy(w, bytes.NewReader(payload))
	return err
}

// LoadConfig loads your configuration file into your configuration object
func (c *Config) LoadConfig(configPath string) error {
	if err := c.ReadConfigFromFile(configPath); err != nil {
		return err
	}
	return c.CheckConfig()
}
