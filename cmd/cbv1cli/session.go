package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/thrasher-corp/coinbasev1/common"
	"github.com/thrasher-corp/coinbasev1/config"
	"github.com/thrasher-corp/coinbasev1/database"
	"github.com/thrasher-corp/coinbasev1/database/drivers"
	"github.com/thrasher-corp/coinbasev1/exchanges/coinbase"
	"github.com/thrasher-corp/coinbasev1/log"
	"github.com/thrasher-corp/coinbasev1/oauth"
)

var errNoRedirectURI = errors.New("oauth redirect uri must be set in the config")

// session bundles everything a command needs from the loaded config
type session struct {
	cfg       *config.Config
	exchanger *oauth.Exchanger
	persister oauth.Persister
	db        *database.Instance
}

func newSession(ctx context.Context) (*session, error) {
	cfg := &config.Config{}
	if err := cfg.LoadConfig(configPath); err != nil {
		return nil, err
	}
	if err := log.SetupGlobalLogger(); err != nil {
		return nil, err
	}
	return sessionFromConfig(ctx, cfg)
}

func sessionFromConfig(ctx context.Context, cfg *config.Config) (*session, error) {
	s := &session{cfg: cfg}
	var err error
	s.persister, s.db, err = newPersister(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.exchanger, err = oauth.NewExchanger(oauth.Credentials{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		TokenURL:     cfg.OAuth.TokenURL,
		AuthorizeURL: cfg.OAuth.AuthorizeURL,
	}, common.NewHTTPClientWithTimeout(cfg.Client.HTTPTimeout))
	if err != nil {
		return nil, s.closeWith(err)
	}
	s.exchanger.Verbose = verbose || cfg.Client.Verbose
	return s, nil
}

// newPersister returns the token persister chosen by the config. A database
// driver also returns the open instance so it can be closed afterwards.
func newPersister(ctx context.Context, cfg *config.Config) (oauth.Persister, *database.Instance, error) {
	p := cfg.OAuth.Persistence
	switch p.Driver {
	case config.PersistenceFile:
		var passphrase []byte
		if p.Passphrase != "" {
			passphrase = []byte(p.Passphrase)
		}
		return &oauth.FilePersister{Path: p.Path, Passphrase: passphrase}, nil, nil
	case config.PersistenceSQLite, config.PersistencePostgres:
		inst, err := drivers.Connect(&cfg.Database, cfg.GetDataPath("database"))
		if err != nil {
			return nil, nil, err
		}
		persister, err := oauth.NewSQLPersister(ctx, inst.SQL, p.TokenID)
		if err != nil {
			return nil, nil, errors.Join(err, inst.CloseConnection())
		}
		return persister, inst, nil
	default:
		return nil, nil, fmt.Errorf("unsupported token persistence driver %q", p.Driver)
	}
}

func (s *session) store(ctx context.Context) (*oauth.Store, error) {
	return oauth.LoadStore(ctx, s.exchanger, s.persister)
}

// client loads the saved tokens and returns an authenticated API client
func (s *session) client(ctx context.Context) (*coinbase.Coinbase, error) {
	store, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	return coinbase.New(coinbase.Config{
		APIURL:        s.cfg.Client.APIURL,
		UserAgent:     s.cfg.Client.UserAgent,
		HTTPTimeout:   s.cfg.Client.HTTPTimeout,
		Verbose:       verbose || s.cfg.Client.Verbose,
		HTTPDebugging: s.cfg.Client.HTTPDebugging,
	}, store)
}

func (s *session) redirectURI() (string, error) {
	if s.cfg.OAuth.RedirectURI == "" {
		return "", errNoRedirectURI
	}
	return s.cfg.OAuth.RedirectURI, nil
}

func (s *session) close() error {
	if s.db == nil {
		return nil
	}
	return s.db.CloseConnection()
}

func (s *session) closeWith(err error) error {
	if closeErr := s.close(); closeErr != nil {
		return errors.Join(err, closeErr)
	}
	return err
}
