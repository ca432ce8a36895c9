package config

import (
	"errors"
	"time"

	"github.com/thrasher-corp/coinbasev1/database"
	"github.com/thrasher-corp/coinbasev1/log"
)

// Constants declared here are filename strings and defaults
const (
	File          = "config.json"
	EncryptedFile = "config.dat"

	// DefaultAPIURL is the exchange REST API root
	DefaultAPIURL = "https://coinbase.com/api/v1/"

	defaultName           = "coinbasev1"
	defaultHTTPTimeout    = time.Second * 15
	defaultTokenID        = "default"
	defaultTokenFile      = "tokens.json"
	defaultSQLiteDatabase = "coinbasev1.db"
)

// Token persistence drivers
const (
	PersistenceFile     = "file"
	PersistenceSQLite   = database.DBSQLite3
	PersistencePostgres = database.DBPostgreSQL
)

var (
	errConfigFileNotFound       = errors.New("config file not found")
	errUnsupportedPersistence   = errors.New("unsupported token persistence driver")
	errPersistenceNeedsDatabase = errors.New("token persistence driver requires the database to be enabled with the same driver")
	errNegativeRecordsPerPage   = errors.New("records per page cannot be negative")
	errPassphraseRequired       = errors.New("config passphrase required, set CBV1_CONFIG_PASSPHRASE")
)

// Config is the overarching object that holds all the information for the
// client
type Config struct {
	Name          string          `json:"name"`
	DataDirectory string          `json:"dataDirectory"`
	EncryptConfig bool            `json:"encryptConfig"`
	Logging       log.Config      `json:"logging"`
	Client        ClientConfig    `json:"client"`
	OAuth         OAuthConfig     `json:"oauth"`
	Database      database.Config `json:"database"`

	passphrase []byte
}

// ClientConfig holds the REST client settings
type ClientConfig struct {
	APIURL         string        `json:"apiURL"`
	UserAgent      string        `json:"userAgent,omitempty"`
	HTTPTimeout    time.Duration `json:"httpTimeout"`
	Verbose        bool          `json:"verbose"`
	HTTPDebugging  bool          `json:"httpDebugging"`
	RecordsPerPage int           `json:"recordsPerPage"`
}

// OAuthConfig holds the application credentials and where issued tokens are
// kept
type OAuthConfig struct {
	ClientID     string            `json:"clientID"`
	ClientSecret string            `json:"clientSecret"`
	RedirectURI  string            `json:"redirectURI"`
	Scopes       []string          `json:"scopes,omitempty"`
	TokenURL     string            `json:"tokenURL"`
	AuthorizeURL string            `json:"authorizeURL"`
	Persistence  PersistenceConfig `json:"persistence"`
}

// PersistenceConfig selects the token persister. The file driver encrypts
// tokens when a passphrase is set, the database drivers share the database
// section's connection.
type PersistenceConfig struct {
	Driver     string `json:"driver"`
	Path       string `json:"path,omitempty"`
	Passphrase string `json:"passphrase,omitempty"`
	TokenID    string `json:"tokenID,omitempty"`
}
