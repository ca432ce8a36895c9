package coinbase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thrasher-corp/coinbasev1/common"
	"github.com/thrasher-corp/coinbasev1/currency"
	"github.com/thrasher-corp/coinbasev1/encoding/json"
	"github.com/thrasher-corp/coinbasev1/exchanges/request"
	"github.com/thrasher-corp/coinbasev1/log"
	"github.com/thrasher-corp/coinbasev1/oauth"
)

const (
	coinbaseAPIURL = "https://coinbase.com/api/v1/"

	coinbaseUsers          = "users"
	coinbaseAccountBalance = "account/balance"
	coinbaseAccounts       = "accounts"
	coinbaseBalance        = "balance"
	coinbasePrimary        = "primary"
	coinbaseTransactions   = "transactions"
	coinbaseTransfers      = "transfers"
	coinbaseAddresses      = "addresses"
	coinbaseApplications   = "oauth/applications"
	coinbaseContacts       = "contacts"
	coinbasePaymentMethods = "payment_methods"

	accountIDParam = "account_id"
	queryParam     = "query"

	defaultRecordsPerPage         = 25
	defaultFetchAllRecordsPerPage = 1000
	defaultHTTPTimeout            = 15 * time.Second
)

var (
	errUnexpectedUserCount = errors.New("expected exactly one user")
	errEmptyID             = errors.New("id cannot be empty")
	errNilRequest          = errors.New("request cannot be nil")
)

// New returns a Coinbase client whose requests are authorised by store
func New(cfg Config, store oauth.TokenStore) (*Coinbase, error) {
	auth, err := oauth.NewAuthenticator(store)
	if err != nil {
		return nil, err
	}
	c := &Coinbase{
		Name:          "Coinbase",
		APIURL:        cfg.APIURL,
		Verbose:       cfg.Verbose,
		HTTPDebugging: cfg.HTTPDebugging,
	}
	if c.APIURL == "" {
		c.APIURL = coinbaseAPIURL
	}
	if !strings.HasSuffix(c.APIURL, "/") {
		c.APIURL += "/"
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = common.NewHTTPClientWithTimeout(timeout)
	}
	opts := []request.RequesterOption{request.WithMiddleware(auth.Middleware())}
	if cfg.UserAgent != "" {
		opts = append(opts, request.WithUserAgent(cfg.UserAgent))
	}
	c.Requester, err = request.New(c.Name, client, opts...)
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		log.Debugf(log.ClientSys, "%s client using API URL %s", c.Name, c.APIURL)
	}
	return c, nil
}

// SendHTTPRequest sends a request to an endpoint relative to the API URL. A
// non nil body is validated when it supports it and sent as JSON. A missing
// resource is reported as *request.NotFoundError carrying endpoint.
func (c *Coinbase) SendHTTPRequest(ctx context.Context, method, endpoint string, params url.Values, body, result interface{}) error {
	var payload []byte
	if body != nil {
		if v, ok := body.(validatable); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	path := common.EncodeURLValues(c.APIURL+endpoint, params)
	err := c.SendPayload(ctx, func() (*request.Item, error) {
		var r io.Reader
		if payload != nil {
			r = bytes.NewReader(payload)
		}
		return &request.Item{
			Method:        method,
			Path:          path,
			Body:          r,
			Result:        result,
			Verbose:       request.IsVerbose(ctx, c.Verbose),
			HTTPDebugging: c.HTTPDebugging,
		}, nil
	})
	var notFound *request.NotFoundError
	if errors.As(err, &notFound) {
		notFound.Endpoint = endpoint
	}
	return err
}

// fetchPage satisfies pagination.Fetcher
func (c *Coinbase) fetchPage(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	return c.SendHTTPRequest(ctx, http.MethodGet, endpoint, params, nil, result)
}

// GetUser returns the authenticated user's profile
func (c *Coinbase) GetUser(ctx context.Context) (*User, error) {
	var resp UsersResponse
	if err := c.SendHTTPRequest(ctx, http.MethodGet, coinbaseUsers, nil, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Users) != 1 {
		return nil, fmt.Errorf("%s %w, received %d", c.Name, errUnexpectedUserCount, len(resp.Users))
	}
	return &resp.Users[0].User, nil
}

// GetBalance returns the balance of the primary account. Prefer
// GetAccountBalance with an explicit account.
func (c *Coinbase) GetBalance(ctx context.Context) (currency.BTCAmount, error) {
	var resp currency.BTCAmount
	err := c.SendHTTPRequest(ctx, http.MethodGet, coinbaseAccountBalance, nil, nil, &resp)
	return resp, err
}

// CreateUser registers a new user
func (c *Coinbase) CreateUser(ctx context.Context, req *CreateUserRequest) (*CreateUserResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: CreateUserRequest", errNilRequest)
	}
	var resp CreateUserResponse
	return &resp, c.SendHTTPRequest(ctx, http.MethodPost, coinbaseUsers, nil, req, &resp)
}

// UpdateUser changes the current user's profile. It looks the user up first,
// use UpdateUserByID when the id is already known.
func (c *Coinbase) UpdateUser(ctx context.Context, req *UpdateUserRequest) (*UpdateUserResponse, error) {
	u, err := c.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	return c.UpdateUserByID(ctx, u.ID, req)
}

// UpdateUserByID changes a user's profile, the id must be the current user's
func (c *Coinbase) UpdateUserByID(ctx context.Context, userID string, req *UpdateUserRequest) (*UpdateUserResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("user %w", errEmptyID)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: UpdateUserRequest", errNilRequest)
	}
	var resp UpdateUserResponse
	return &resp, c.SendHTTPRequest(ctx, http.MethodPut, resourcePath(coinbaseUsers, userID), nil, req, &resp)
}

// GetAccountBalance returns the balance of an account
func (c *Coinbase) GetAccountBalance(ctx context.Context, accountID string) (currency.BTCAmount, error) {
	var resp currency.BTCAmount
	if accountID == "" {
		return resp, fmt.Errorf("account %w", errEmptyID)
	}
	err := c.SendHTTPRequest(ctx, http.MethodGet, resourcePath(coinbaseAccounts, accountID, coinbaseBalance), nil, nil, &resp)
	return resp, err
}

// CreateAccount creates an account. A nil request creates one with a server
// assigned name.
func (c *Coinbase) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*AccountResponse, error) {
	var body interface{}
	if req != nil {
		body = req
	}
	var resp AccountResponse
	return &resp, c.SendHTTPRequest(ctx, http.MethodPost, coinbaseAccounts, nil, body, &resp)
}

// SetPrimaryAccount makes an account the user's primary account
func (c *Coinbase) SetPrimaryAccount(ctx context.Context, accountID string) (*RequestResponse, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account %w", errEmptyID)
	}
	var resp RequestResponse
	return &resp, c.SendHTTPRequest(ctx, http.MethodPost, resourcePath(coinbaseAccounts, accountID, coinbasePrimary), nil, nil, &resp)
}

// UpdateAccount renames an account
func (c *Coinbase) UpdateAccount(ctx context.Context, accountID string, req *UpdateAccountRequest) (*AccountResponse, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account %w", errEmptyID)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: UpdateAccountRequest", errNilRequest)
	}
	var resp AccountResponse
	return &resp, c.SendHTTPRequest(ctx, http.MethodPut, resourcePath(coinbaseAccounts, accountID), nil, req, &resp)
}

// DestroyAccount deletes an account
func (c *Coinbase) DestroyAccount(ctx context.Context, accountID string) (*RequestResponse, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account %w", errEmptyID)
	}
	var resp RequestResponse
	return &resp, c.SendHTTPRequest(ctx, http.MethodDelete, resourcePath(coinbaseAccounts, accountID), nil, nil, &resp)
}

// GetTransaction returns a single transaction, optionally scoped to an account
func (c *Coinbase) GetTransaction(ctx context.Context, transactionID, accountID string) (*Transaction, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("transaction %w", errEmptyID)
	}
	var resp TransactionResponse
	if err := c.SendHTTPRequest(ctx, http.MethodGet, resourcePath(coinbaseTransactions, transactionID), accountParams(accountID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Transaction, nil
}

// GetApplication returns a single OAuth application
func (c *Coinbase) GetApplication(ctx context.Context, applicationID string) (*Application, error) {
	if applicationID == "" {
		return nil, fmt.Errorf("application %w", errEmptyID)
	}
	var resp ApplicationResponse
	if err := c.SendHTTPRequest(ctx, http.MethodGet, resourcePath(coinbaseApplications, applicationID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Application, nil
}

// CreateApplication registers a new OAuth application
func (c *Coinbase) CreateApplication(ctx context.Context, req *CreateApplicationRequest) (*CreateApplicationResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: CreateApplicationRequest", errNilRequest)
	}
	var resp CreateApplicationResponse
	return &resp, c.SendHTTPRequest(ctx, http.MethodPost, coinbaseApplications, nil, req, &resp)
}

// GetPaymentMethods returns the user's payment methods
func (c *Coinbase) GetPaymentMethods(ctx context.Context) (*PaymentMethodsResponse, error) {
	var resp PaymentMethodsResponse
	return &resp, c.SendHTTPRequest(ctx, http.MethodGet, coinbasePaymentMethods, nil, nil, &resp)
}

// resourcePath joins path segments, escaping each id
func resourcePath(base string, segments ...string) string {
	var sb strings.Builder
	sb.WriteString(base)
	for i := range segments {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(segments[i]))
	}
	return sb.String()
}

func accountParams(accountID string) url.Values {
	if accountID == "" {
		return nil
	}
	return url.Values{accountIDParam: {accountID}}
}
