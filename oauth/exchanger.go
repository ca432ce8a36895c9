package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/thrasher-corp/coinbasev1/exchanges/request"
	"github.com/thrasher-corp/coinbasev1/log"
)

var (
	errClientIDUnset     = errors.New("oauth client id unset")
	errClientSecretUnset = errors.New("oauth client secret unset")
	errRedirectURIUnset  = errors.New("oauth redirect uri unset")
	errCodeUnset         = errors.New("oauth authorization code unset")
	errRefreshTokenUnset = errors.New("refresh token unset")
)

// Credentials identify the OAuth application
type Credentials struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	AuthorizeURL string
}

// Exchanger performs the one-off token endpoint calls. It does not carry an
// access token itself.
type Exchanger struct {
	creds     Credentials
	requester *request.Requester
	Verbose   bool
}

// NewExchanger returns an Exchanger for the application credentials
func NewExchanger(creds Credentials, httpClient *http.Client, opts ...request.RequesterOption) (*Exchanger, error) {
	if creds.ClientID == "" {
		return nil, errClientIDUnset
	}
	if creds.ClientSecret == "" {
		return nil, errClientSecretUnset
	}
	if creds.TokenURL == "" {
		creds.TokenURL = DefaultTokenURL
	}
	if creds.AuthorizeURL == "" {
		creds.AuthorizeURL = DefaultAuthorizeURL
	}
	r, err := request.New("oauth", httpClient, opts...)
	if err != nil {
		return nil, err
	}
	return &Exchanger{creds: creds, requester: r}, nil
}

// AuthorizeURL returns the page a user visits to grant the application access
func (e *Exchanger) AuthorizeURL(redirectURI string, scopes []string, state string) (string, error) {
	if redirectURI == "" {
		return "", errRedirectURIUnset
	}
	u, err := url.Parse(e.creds.AuthorizeURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", e.creds.ClientID)
	q.Set("redirect_uri", redirectURI)
	if len(scopes) > 0 {
		q.Set("scope", strings.Join(scopes, " "))
	}
	if state != "" {
		q.Set("state", state)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// RequestTokens exchanges an authorization code for tokens
func (e *Exchanger) RequestTokens(ctx context.Context, redirectURI, code string) (*AuthResponse, error) {
	if redirectURI == "" {
		return nil, errRedirectURIUnset
	}
	if code == "" {
		return nil, errCodeUnset
	}
	params := url.Values{}
	params.Set("grant_type", "authorization_code")
	params.Set("code", code)
	params.Set("redirect_uri", redirectURI)
	return e.post(ctx, params)
}

// RefreshTokens exchanges a refresh token for new tokens
func (e *Exchanger) RefreshTokens(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, errRefreshTokenUnset
	}
	params := url.Values{}
	params.Set("grant_type", "refresh_token")
	params.Set("refresh_token", refreshToken)
	return e.post(ctx, params)
}

func (e *Exchanger) post(ctx context.Context, params url.Values) (*AuthResponse, error) {
	params.Set("client_id", e.creds.ClientID)
	params.Set("client_secret", e.creds.ClientSecret)

	var resp AuthResponse
	err := e.requester.SendPayload(ctx, func() (*request.Item, error) {
		return &request.Item{
			Method:  http.MethodPost,
			Path:    e.creds.TokenURL,
			Headers: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
			Body:    strings.NewReader(params.Encode()),
			Result:  &resp,
			Verbose: request.IsVerbose(ctx, e.Verbose),
		}, nil
	})
	if err != nil {
		var httpErr *request.HTTPError
		if errors.As(err, &httpErr) {
			authErr := &AuthenticationError{
				StatusCode: httpErr.StatusCode,
				Parameters: redactParameters(params),
				Messages:   httpErr.Messages,
				Err:        err,
			}
			log.Errorln(log.OAuthSys, authErr)
			return nil, authErr
		}
		return nil, fmt.Errorf("token request %s: %w", params.Get("grant_type"), err)
	}
	log.Debugf(log.OAuthSys, "token endpoint issued %s token expiring in %ds", resp.TokenType, resp.ExpiresIn)
	return &resp, nil
}
