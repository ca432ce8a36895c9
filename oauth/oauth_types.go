package oauth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTokenURL is the provider token endpoint
	DefaultTokenURL = "https://coinbase.com/oauth/token"
	// DefaultAuthorizeURL is the provider authorisation page
	DefaultAuthorizeURL = "https://coinbase.com/oauth/authorize"
	// DefaultExpiryLeeway is how long before expiry a token is treated as expired
	DefaultExpiryLeeway = time.Minute

	accessTokenParam = "access_token"
	refreshKey       = "refresh"
	redacted         = "REDACTED"
)

// Tokens is the credential state issued by the provider
type Tokens struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponse is the token endpoint response
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
}

// Tokens converts the response into token state, with the expiry measured from
// issuedAt
func (a *AuthResponse) Tokens(issuedAt time.Time) Tokens {
	return Tokens{
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
		ExpiresAt:    issuedAt.Add(time.Duration(a.ExpiresIn) * time.Second),
	}
}

// TokenStore supplies the current access token and refreshes it on demand.
// Concurrent Refresh calls must collapse into a single exchange.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	Expiration(ctx context.Context) (time.Time, error)
	Refresh(ctx context.Context) error
}

// Refresher exchanges a refresh token for a new set of tokens
type Refresher interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*AuthResponse, error)
}

// Persister saves and restores token state between runs
type Persister interface {
	Load(ctx context.Context) (Tokens, error)
	Save(ctx context.Context, t Tokens) error
}

// AuthenticationError is returned when the token endpoint rejects a request.
// Parameters holds the request parameters with the client secret and tokens
// redacted.
type AuthenticationError struct {
	StatusCode int
	Parameters url.Values
	Messages   []string
	Err        error
}

func (e *AuthenticationError) Error() string {
	msg := fmt.Sprintf("authentication failed: HTTP %d grant_type=%s", e.StatusCode, e.Parameters.Get("grant_type"))
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, ", ")
	}
	return msg
}

// Unwrap returns the underlying transport error
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

func redactParameters(params url.Values) url.Values {
	out := make(url.Values, len(params))
	for k, v := range params {
		switch k {
		case "client_secret", "refresh_token", "code":
			out[k] = []string{redacted}
		default:
			out[k] = append([]string(nil), v...)
		}
	}
	return out
}
