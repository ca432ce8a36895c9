package main

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"github.com/thrasher-corp/coinbasev1/exchanges/coinbase"
	"github.com/urfave/cli/v2"
)

var (
	accountID      string
	searchQuery    string
	authCode       string
	recordsPerPage int
)

var accountFlag = &cli.StringFlag{
	Name:        "account",
	Aliases:     []string{"a"},
	Usage:       "the account id, the primary account when unset",
	Destination: &accountID,
}

var limitFlag = &cli.IntFlag{
	Name:        "limit",
	Aliases:     []string{"l"},
	Usage:       "records per page, the config value when unset",
	Destination: &recordsPerPage,
}

var queryFlag = &cli.StringFlag{
	Name:        "query",
	Aliases:     []string{"q"},
	Usage:       "filters results by the query",
	Destination: &searchQuery,
}

// clientAction wraps a call against an authenticated client and prints the
// result as JSON
func clientAction(call func(ctx context.Context, s *session, cb *coinbase.Coinbase) (any, error)) cli.ActionFunc {
	return sessionAction(func(ctx context.Context, s *session) (any, error) {
		cb, err := s.client(ctx)
		if err != nil {
			return nil, err
		}
		return call(ctx, s, cb)
	})
}

func sessionAction(call func(ctx context.Context, s *session) (any, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx, cancel := withTimeout(c)
		defer cancel()

		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		result, err := call(ctx, s)
		if err != nil {
			return s.closeWith(err)
		}
		jsonOutput(result)
		return s.close()
	}
}

func pageSize(s *session) int {
	if recordsPerPage > 0 {
		return recordsPerPage
	}
	return s.cfg.Client.RecordsPerPage
}

var authCommand = &cli.Command{
	Name:  "auth",
	Usage: "authorises the application and manages saved tokens",
	Subcommands: []*cli.Command{
		{
			Name:   "url",
			Usage:  "prints the page to visit to grant access",
			Action: sessionAction(authorizeURL),
		},
		{
			Name:  "exchange",
			Usage: "exchanges an authorization code for tokens and saves them",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "code",
					Usage:       "the code returned to the redirect uri",
					Required:    true,
					Destination: &authCode,
				},
			},
			Action: sessionAction(exchangeCode),
		},
		{
			Name:   "refresh",
			Usage:  "refreshes the saved tokens",
			Action: sessionAction(refreshTokens),
		},
	},
}

func authorizeURL(_ context.Context, s *session) (any, error) {
	redirect, err := s.redirectURI()
	if err != nil {
		return nil, err
	}
	state, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	u, err := s.exchanger.AuthorizeURL(redirect, s.cfg.OAuth.Scopes, state.String())
	if err != nil {
		return nil, err
	}
	return map[string]string{"url": u, "state": state.String()}, nil
}

func exchangeCode(ctx context.Context, s *session) (any, error) {
	redirect, err := s.redirectURI()
	if err != nil {
		return nil, err
	}
	resp, err := s.exchanger.RequestTokens(ctx, redirect, authCode)
	if err != nil {
		return nil, err
	}
	tokens := resp.Tokens(time.Now())
	if err := s.persister.Save(ctx, tokens); err != nil {
		return nil, err
	}
	return map[string]any{"expiresAt": tokens.ExpiresAt, "scope": resp.Scope}, nil
}

func refreshTokens(ctx context.Context, s *session) (any, error) {
	store, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	if err := store.Refresh(ctx); err != nil {
		return nil, err
	}
	expiry, err := store.Expiration(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"expiresAt": expiry}, nil
}

var userCommand = &cli.Command{
	Name:  "user",
	Usage: "gets the current user",
	Action: clientAction(func(ctx context.Context, _ *session, cb *coinbase.Coinbase) (any, error) {
		return cb.GetUser(ctx)
	}),
}

var balanceCommand = &cli.Command{
	Name:  "balance",
	Usage: "gets the primary account balance",
	Action: clientAction(func(ctx context.Context, _ *session, cb *coinbase.Coinbase) (any, error) {
		return cb.GetBalance(ctx)
	}),
}

var accountsCommand = &cli.Command{
	Name:  "accounts",
	Usage: "lists every account",
	Flags: []cli.Flag{limitFlag},
	Action: clientAction(func(ctx context.Context, s *session, cb *coinbase.Coinbase) (any, error) {
		return cb.GetAccounts(ctx, pageSize(s))
	}),
}

var accountBalanceCommand = &cli.Command{
	Name:  "account-balance",
	Usage: "gets the balance of an account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "account",
			Aliases:     []string{"a"},
			Usage:       "the account id",
			Required:    true,
			Destination: &accountID,
		},
	},
	Action: clientAction(func(ctx context.Context, _ *session, cb *coinbase.Coinbase) (any, error) {
		return cb.GetAccountBalance(ctx, accountID)
	}),
}

var transactionsCommand = &cli.Command{
	Name:  "transactions",
	Usage: "lists every transaction of an account",
	Flags: []cli.Flag{accountFlag},
	Action: clientAction(func(ctx context.Context, _ *session, cb *coinbase.Coinbase) (any, error) {
		return cb.GetTransactions(ctx, accountID)
	}),
}

var transfersCommand = &cli.Command{
	Name:  "transfers",
	Usage: "lists every buy and sell of an account",
	Flags: []cli.Flag{accountFlag, limitFlag},
	Action: clientAction(func(ctx context.Context, s *session, cb *coinbase.Coinbase) (any, error) {
		return cb.GetTransfers(ctx, accountID, pageSize(s))
	}),
}

var addressesCommand = &cli.Command{
	Name:  "addresses",
	Usage: "lists the receive addresses of an account",
	Flags: []cli.Flag{accountFlag, queryFlag, limitFlag},
	Action: clientAction(func(ctx context.Context, s *session, cb *coinbase.Coinbase) (any, error) {
		return cb.GetAddresses(ctx, accountID, searchQuery, pageSize(s))
	}),
}

var contactsCommand = &cli.Command{
	Name:  "contacts",
	Usage: "lists the contacts of the user",
	Flags: []cli.Flag{queryFlag, limitFlag},
	Action: clientAction(func(ctx context.Context, s *session, cb *coinbase.Coinbase) (any, error) {
		return cb.GetContacts(ctx, searchQuery, pageSize(s))
	}),
}

var applicationsCommand = &cli.Command{
	Name:  "applications",
	Usage: "lists the OAuth applications of the user",
	Action: clientAction(func(ctx context.Context, _ *session, cb *coinbase.Coinbase) (any, error) {
		return cb.GetApplications(ctx)
	}),
}

var paymentMethodsCommand = &cli.Command{
	Name:  "payment-methods",
	Usage: "lists the payment methods of the user",
	Action: clientAction(func(ctx context.Context, _ *session, cb *coinbase.Coinbase) (any, error) {
		return cb.GetPaymentMethods(ctx)
	}),
}
