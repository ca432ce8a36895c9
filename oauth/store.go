package oauth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/thrasher-corp/coinbasev1/common"
	"github.com/thrasher-corp/coinbasev1/log"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrNoTokens is returned when a persister holds no saved tokens
	ErrNoTokens = errors.New("no saved tokens")

	errNoAccessToken  = errors.New("no access token available")
	errNoRefreshToken = errors.New("no refresh token available")
	errPersistTokens  = errors.New("cannot persist refreshed tokens")
)

// Store is a TokenStore that refreshes through a Refresher and optionally
// persists every new set of tokens
type Store struct {
	mu        sync.RWMutex
	tokens    Tokens
	refresher Refresher
	persister Persister
	group     singleflight.Group
	now       func() time.Time
}

// NewStore returns a Store seeded with tokens. persister may be nil.
func NewStore(tokens Tokens, refresher Refresher, persister Persister) (*Store, error) {
	if refresher == nil {
		return nil, fmt.Errorf("%w: refresher", common.ErrNilPointer)
	}
	return &Store{
		tokens:    tokens,
		refresher: refresher,
		persister: persister,
		now:       time.Now,
	}, nil
}

// LoadStore returns a Store seeded from previously persisted tokens
func LoadStore(ctx context.Context, refresher Refresher, persister Persister) (*Store, error) {
	if persister == nil {
		return nil, fmt.Errorf("%w: persister", common.ErrNilPointer)
	}
	tokens, err := persister.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(tokens, refresher, persister)
}

// AccessToken returns the current access token
func (s *Store) AccessToken(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens.AccessToken == "" {
		return "", errNoAccessToken
	}
	return s.tokens.AccessToken, nil
}

// Expiration returns when the current access token expires
func (s *Store) Expiration(context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.ExpiresAt, nil
}

// Tokens returns a copy of the current token state
func (s *Store) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

// SetTokens replaces the token state, persisting it when a persister is set
func (s *Store) SetTokens(ctx context.Context, t Tokens) error {
	s.mu.Lock()
	s.tokens = t
	s.mu.Unlock()
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(ctx, t); err != nil {
		return fmt.Errorf("%w: %w", errPersistTokens, err)
	}
	return nil
}

// Refresh exchanges the refresh token for new tokens. Concurrent callers share
// one in-flight exchange and all observe its result. The exchange is not
// cancelled when a waiting caller gives up; that caller returns its own context
// error instead.
func (s *Store) Refresh(ctx context.Context) error {
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(refreshKey, func() (interface{}, error) {
		return nil, s.refresh(detached)
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (s *Store) refresh(ctx context.Context) error {
	s.mu.RLock()
	refreshToken := s.tokens.RefreshToken
	s.mu.RUnlock()
	if refreshToken == "" {
		return errNoRefreshToken
	}

	resp, err := s.refresher.RefreshTokens(ctx, refreshToken)
	if err != nil {
		return err
	}
	tokens := resp.Tokens(s.now())
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	if err := s.SetTokens(ctx, tokens); err != nil {
		if !errors.Is(err, errPersistTokens) {
			return err
		}
		// the new tokens are live in memory, a failed save only affects the
		// next process start
		log.Errorf(log.OAuthSys, "refreshed tokens in use but not saved: %s", err)
	}
	log.Infof(log.OAuthSys, "access token refreshed, expires at %s", tokens.ExpiresAt.Format(time.RFC3339))
	return nil
}
