package oauth

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thrasher-corp/coinbasev1/common"
	"github.com/thrasher-corp/coinbasev1/exchanges/request"
	"github.com/thrasher-corp/coinbasev1/log"
)

const drainBodyLimit = 1 << 16

var errRequestNotReplayable = errors.New("request body cannot be replayed")

// Authenticator attaches the access token to outgoing requests. It refreshes
// the token before sending when it is about to expire and resends once after a
// 401 Unauthorized when no refresh happened beforehand.
type Authenticator struct {
	store  TokenStore
	leeway time.Duration
	now    func() time.Time
}

// NewAuthenticator returns an Authenticator backed by store
func NewAuthenticator(store TokenStore) (*Authenticator, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: token store", common.ErrNilPointer)
	}
	return &Authenticator{
		store:  store,
		leeway: DefaultExpiryLeeway,
		now:    time.Now,
	}, nil
}

// Middleware returns the authenticator as a request pipeline stage
func (a *Authenticator) Middleware() request.Middleware {
	return func(next request.Sender) request.Sender {
		return func(req *http.Request) (*http.Response, error) {
			return a.send(next, req)
		}
	}
}

func (a *Authenticator) send(next request.Sender, req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	expiry, err := a.store.Expiration(ctx)
	if err != nil {
		return nil, err
	}

	var refreshed bool
	if !a.now().Before(expiry.Add(-a.leeway)) {
		log.Debugf(log.OAuthSys, "access token expires at %s, refreshing before %s %s",
			expiry.Format(time.RFC3339), req.Method, req.URL.Path)
		if err = a.store.Refresh(ctx); err != nil {
			return nil, err
		}
		refreshed = true
	}

	authed, err := a.authorise(req, false)
	if err != nil {
		return nil, err
	}
	resp, err := next(authed)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || refreshed {
		return resp, err
	}

	log.Warnf(log.OAuthSys, "%s %s unauthorised, refreshing access token and resending",
		req.Method, req.URL.Path)
	drain(resp.Body)
	if err = a.store.Refresh(ctx); err != nil {
		return nil, err
	}
	authed, err = a.authorise(req, true)
	if err != nil {
		return nil, err
	}
	return next(authed)
}

// authorise clones req with the current access token set as a query
// parameter, replacing any existing value
func (a *Authenticator) authorise(req *http.Request, replay bool) (*http.Request, error) {
	token, err := a.store.AccessToken(req.Context())
	if err != nil {
		return nil, err
	}
	clone := req.Clone(req.Context())
	if replay && req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			return nil, errRequestNotReplayable
		}
		if clone.Body, err = req.GetBody(); err != nil {
			return nil, err
		}
	}
	q := clone.URL.Query()
	q.Set(accessTokenParam, token)
	clone.URL.RawQuery = q.Encode()
	return clone, nil
}

func drain(body io.ReadCloser) {
	defer body.Close()
	if _, err := io.Copy(io.Discard, io.LimitReader(body, drainBodyLimit)); err != nil {
		log.Errorf(log.OAuthSys, "failed to drain response body: %s", err)
	}
}
