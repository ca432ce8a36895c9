package config

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/thrasher-corp/coinbasev1/log"
)

const (
	envPrefix     = "CBV1"
	passphraseKey = "config.passphrase"
)

type envBinding struct {
	key   string
	apply func(v *viper.Viper, key string)
}

// newEnv returns a viper instance reading CBV1_ prefixed variables where a
// dotted key such as oauth.clientSecret maps to CBV1_OAUTH_CLIENTSECRET
func newEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func (c *Config) envBindings() []envBinding {
	str := func(dst *string) func(*viper.Viper, string) {
		return func(v *viper.Viper, k string) { *dst = v.GetString(k) }
	}
	boolean := func(dst *bool) func(*viper.Viper, string) {
		return func(v *viper.Viper, k string) { *dst = v.GetBool(k) }
	}
	return []envBinding{
		{"name", str(&c.Name)},
		{"dataDirectory", str(&c.DataDirectory)},
		{"client.apiURL", str(&c.Client.APIURL)},
		{"client.userAgent", str(&c.Client.UserAgent)},
		{"client.httpTimeout", func(v *viper.Viper, k string) { c.Client.HTTPTimeout = v.GetDuration(k) }},
		{"client.verbose", boolean(&c.Client.Verbose)},
		{"client.httpDebugging", boolean(&c.Client.HTTPDebugging)},
		{"client.recordsPerPage", func(v *viper.Viper, k string) { c.Client.RecordsPerPage = v.GetInt(k) }},
		{"oauth.clientID", str(&c.OAuth.ClientID)},
		{"oauth.clientSecret", str(&c.OAuth.ClientSecret)},
		{"oauth.redirectURI", str(&c.OAuth.RedirectURI)},
		{"oauth.scopes", func(v *viper.Viper, k string) { c.OAuth.Scopes = v.GetStringSlice(k) }},
		{"oauth.tokenURL", str(&c.OAuth.TokenURL)},
		{"oauth.authorizeURL", str(&c.OAuth.AuthorizeURL)},
		{"oauth.persistence.driver", str(&c.OAuth.Persistence.Driver)},
		{"oauth.persistence.path", str(&c.OAuth.Persistence.Path)},
		{"oauth.persistence.passphrase", str(&c.OAuth.Persistence.Passphrase)},
		{"oauth.persistence.tokenID", str(&c.OAuth.Persistence.TokenID)},
		{"database.enabled", boolean(&c.Database.Enabled)},
		{"database.verbose", boolean(&c.Database.Verbose)},
		{"database.driver", str(&c.Database.Driver)},
		{"database.host", str(&c.Database.Host)},
		{"database.port", func(v *viper.Viper, k string) { c.Database.Port = v.GetUint16(k) }},
		{"database.username", str(&c.Database.Username)},
		{"database.password", str(&c.Database.Password)},
		{"database.database", str(&c.Database.Database)},
		{"database.sslmode", str(&c.Database.SSLMode)},
	}
}

// applyEnvOverrides replaces config values with any matching CBV1_ environment
// variables
func (c *Config) applyEnvOverrides() error {
	v := newEnv()
	for _, b := range c.envBindings() {
		if err := v.BindEnv(b.key); err != nil {
			return err
		}
		if !v.IsSet(b.key) {
			continue
		}
		b.apply(v, b.key)
		log.Debugf(log.ConfigMgr, "%s overridden from environment", b.key)
	}
	return nil
}

// envPassphrase supplies the config encryption passphrase from
// CBV1_CONFIG_PASSPHRASE
func envPassphrase() ([]byte, error) {
	v := newEnv()
	if err := v.BindEnv(passphraseKey); err != nil {
		return nil, err
	}
	p := v.GetString(passphraseKey)
	if p == "" {
		return nil, errPassphraseRequired
	}
	return []byte(p), nil
}
