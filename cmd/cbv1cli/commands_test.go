package main

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/coinbasev1/config"
	"github.com/thrasher-corp/coinbasev1/database"
	"github.com/thrasher-corp/coinbasev1/encoding/json"
	"github.com/thrasher-corp/coinbasev1/exchanges/mock"
	"github.com/thrasher-corp/coinbasev1/oauth"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		OAuth: config.OAuthConfig{
			ClientID:     "id",
			ClientSecret: "secret",
			RedirectURI:  "https://localhost/callback",
			Persistence: config.PersistenceConfig{
				Driver: config.PersistenceFile,
				Path:   filepath.Join(t.TempDir(), "tokens.json"),
			},
		},
	}
}

func TestNewApp(t *testing.T) {
	t.Parallel()
	app := newApp()
	names := make([]string, 0, len(app.Commands))
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "auth")
	assert.Contains(t, names, "accounts")
	assert.Contains(t, names, "payment-methods")
}

func TestNewPersister(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	p, db, err := newPersister(context.Background(), cfg)
	require.NoError(t, err, "newPersister must not error")
	assert.Nil(t, db, "file persistence should not open a database")
	assert.IsType(t, &oauth.FilePersister{}, p)

	cfg.OAuth.Persistence.Driver = config.PersistenceSQLite
	_, _, err = newPersister(context.Background(), cfg)
	assert.ErrorIs(t, err, database.ErrDatabaseSupportDisabled)

	cfg.OAuth.Persistence.Driver = "redis"
	_, _, err = newPersister(context.Background(), cfg)
	assert.Error(t, err, "newPersister should reject an unknown driver")
}

func TestSessionAuthorizeURL(t *testing.T) {
	t.Parallel()
	s, err := sessionFromConfig(context.Background(), testConfig(t))
	require.NoError(t, err, "sessionFromConfig must not error")

	out, err := authorizeURL(context.Background(), s)
	require.NoError(t, err, "authorizeURL must not error")
	m, ok := out.(map[string]string)
	require.True(t, ok, "authorizeURL must return a map")
	assert.Contains(t, m["url"], "client_id=id")
	assert.Contains(t, m["url"], "state="+m["state"])

	s.cfg.OAuth.RedirectURI = ""
	_, err = authorizeURL(context.Background(), s)
	assert.ErrorIs(t, err, errNoRedirectURI)
}

func TestSessionClient(t *testing.T) {
	t.Parallel()
	srv := mock.NewServer(mock.VCRMock{
		AccessToken: "token",
		Routes: map[string]map[string][]mock.HTTPResponse{
			"/users": {http.MethodGet: {{Data: json.RawMessage(`{"users":[{"user":{"id":"1","email":"a@b.com","balance":{"amount":"1.00000000","currency":"BTC"}}}]}`)}}},
		},
	})
	t.Cleanup(srv.Close)

	cfg := testConfig(t)
	cfg.Client.APIURL = srv.URL
	s, err := sessionFromConfig(context.Background(), cfg)
	require.NoError(t, err, "sessionFromConfig must not error")

	_, err = s.client(context.Background())
	assert.ErrorIs(t, err, oauth.ErrNoTokens)

	require.NoError(t, s.persister.Save(context.Background(), oauth.Tokens{
		AccessToken:  "token",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}), "Save must not error")

	cb, err := s.client(context.Background())
	require.NoError(t, err, "client must not error")
	u, err := cb.GetUser(context.Background())
	require.NoError(t, err, "GetUser must not error")
	assert.Equal(t, "a@b.com", u.Email)
	assert.NoError(t, s.close())
}

func TestSessionRequiresCredentials(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.OAuth.ClientID = ""
	_, err := sessionFromConfig(context.Background(), cfg)
	assert.Error(t, err, "sessionFromConfig should error without a client id")
}
