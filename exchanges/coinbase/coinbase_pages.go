package coinbase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/thrasher-corp/coinbasev1/exchanges/pagination"
	"github.com/thrasher-corp/coinbasev1/log"
)

var errInvalidPageSize = errors.New("records per page cannot be negative")

// newCursor returns a Begin cursor over endpoint. A pageSize of zero leaves
// the page size to the server.
func newCursor[T pagination.Page](c *Coinbase, endpoint string, pageSize int, params url.Values) (*pagination.Cursor[T], error) {
	if pageSize < 0 {
		return nil, fmt.Errorf("%w: %d", errInvalidPageSize, pageSize)
	}
	return pagination.NewCursor[T](c.fetchPage, endpoint, pageSize, params)
}

// allPages fetches every page of the cursor's resource in page order
func allPages[T pagination.Page](ctx context.Context, c *Coinbase, cursor *pagination.Cursor[T]) ([]T, error) {
	pages, err := cursor.Begin().GetRemainingResponses(ctx)
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		log.Debugf(log.ClientSys, "%s fetched %d pages of %s", c.Name, len(pages), cursor.Endpoint())
	}
	return pages, nil
}

func orDefault(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}

func filterParams(accountID, query string) url.Values {
	v := url.Values{}
	if accountID != "" {
		v.Set(accountIDParam, accountID)
	}
	if query != "" {
		v.Set(queryParam, query)
	}
	return v
}

// GetAccountPagesList returns a cursor over the pages of the accounts list. A
// recordsPerPage of zero uses the server default.
func (c *Coinbase) GetAccountPagesList(recordsPerPage int) (*pagination.Cursor[AccountsPage], error) {
	return newCursor[AccountsPage](c, coinbaseAccounts, recordsPerPage, nil)
}

// GetAccountPages fetches every page of the accounts list
func (c *Coinbase) GetAccountPages(ctx context.Context, recordsPerPage int) ([]AccountsPage, error) {
	cursor, err := c.GetAccountPagesList(orDefault(recordsPerPage, defaultFetchAllRecordsPerPage))
	if err != nil {
		return nil, err
	}
	return allPages(ctx, c, cursor)
}

// GetAccountsList returns the accounts as a flat sequence fetched on demand
func (c *Coinbase) GetAccountsList(recordsPerPage int) (*pagination.Records[AccountsPage, Account], error) {
	cursor, err := c.GetAccountPagesList(recordsPerPage)
	if err != nil {
		return nil, err
	}
	return pagination.NewRecords(cursor, func(p AccountsPage) []Account { return p.Accounts }), nil
}

// GetAccounts fetches every account
func (c *Coinbase) GetAccounts(ctx context.Context, recordsPerPage int) ([]Account, error) {
	records, err := c.GetAccountsList(orDefault(recordsPerPage, defaultFetchAllRecordsPerPage))
	if err != nil {
		return nil, err
	}
	return records.ToSlice(ctx)
}

// GetTransactionPagesList returns a cursor over the pages of the transactions
// list, optionally scoped to an account
func (c *Coinbase) GetTransactionPagesList(accountID string) (*pagination.Cursor[TransactionsPage], error) {
	return newCursor[TransactionsPage](c, coinbaseTransactions, 0, filterParams(accountID, ""))
}

// GetTransactionPages fetches every page of the transactions list
func (c *Coinbase) GetTransactionPages(ctx context.Context, accountID string) ([]TransactionsPage, error) {
	cursor, err := c.GetTransactionPagesList(accountID)
	if err != nil {
		return nil, err
	}
	return allPages(ctx, c, cursor)
}

// GetTransactionsList returns the transactions as a flat sequence fetched on
// demand
func (c *Coinbase) GetTransactionsList(accountID string) (*pagination.Records[TransactionsPage, Transaction], error) {
	cursor, err := c.GetTransactionPagesList(accountID)
	if err != nil {
		return nil, err
	}
	return pagination.NewRecords(cursor, func(p TransactionsPage) []Transaction {
		out := make([]Transaction, len(p.Transactions))
		for i := range p.Transactions {
			out[i] = p.Transactions[i].Transaction
		}
		return out
	}), nil
}

// GetTransactions fetches every transaction
func (c *Coinbase) GetTransactions(ctx context.Context, accountID string) ([]Transaction, error) {
	records, err := c.GetTransactionsList(accountID)
	if err != nil {
		return nil, err
	}
	return records.ToSlice(ctx)
}

// GetTransferPagesList returns a cursor over the pages of the transfers list.
// A recordsPerPage of zero uses 25.
func (c *Coinbase) GetTransferPagesList(accountID string, recordsPerPage int) (*pagination.Cursor[TransfersPage], error) {
	return newCursor[TransfersPage](c, coinbaseTransfers, orDefault(recordsPerPage, defaultRecordsPerPage), filterParams(accountID, ""))
}

// GetTransferPages fetches every page of the transfers list
func (c *Coinbase) GetTransferPages(ctx context.Context, accountID string, recordsPerPage int) ([]TransfersPage, error) {
	cursor, err := c.GetTransferPagesList(accountID, orDefault(recordsPerPage, defaultFetchAllRecordsPerPage))
	if err != nil {
		return nil, err
	}
	return allPages(ctx, c, cursor)
}

// GetTransfersList returns the transfers as a flat sequence fetched on demand
func (c *Coinbase) GetTransfersList(accountID string, recordsPerPage int) (*pagination.Records[TransfersPage, Transfer], error) {
	cursor, err := c.GetTransferPagesList(accountID, recordsPerPage)
	if err != nil {
		return nil, err
	}
	return pagination.NewRecords(cursor, func(p TransfersPage) []Transfer {
		out := make([]Transfer, len(p.Transfers))
		for i := range p.Transfers {
			out[i] = p.Transfers[i].Transfer
		}
		return out
	}), nil
}

// GetTransfers fetches every transfer
func (c *Coinbase) GetTransfers(ctx context.Context, accountID string, recordsPerPage int) ([]Transfer, error) {
	records, err := c.GetTransfersList(accountID, orDefault(recordsPerPage, defaultFetchAllRecordsPerPage))
	if err != nil {
		return nil, err
	}
	return records.ToSlice(ctx)
}

// GetAddressPagesList returns a cursor over the pages of the addresses list.
// query matches the address and its label. A recordsPerPage of zero uses 25.
func (c *Coinbase) GetAddressPagesList(accountID, query string, recordsPerPage int) (*pagination.Cursor[AddressesPage], error) {
	return newCursor[AddressesPage](c, coinbaseAddresses, orDefault(recordsPerPage, defaultRecordsPerPage), filterParams(accountID, query))
}

// GetAddressPages fetches every page of the addresses list
func (c *Coinbase) GetAddressPages(ctx context.Context, accountID, query string, recordsPerPage int) ([]AddressesPage, error) {
	cursor, err := c.GetAddressPagesList(accountID, query, orDefault(recordsPerPage, defaultFetchAllRecordsPerPage))
	if err != nil {
		return nil, err
	}
	return allPages(ctx, c, cursor)
}

// GetAddressesList returns the addresses as a flat sequence fetched on demand
func (c *Coinbase) GetAddressesList(accountID, query string, recordsPerPage int) (*pagination.Records[AddressesPage, Address], error) {
	cursor, err := c.GetAddressPagesList(accountID, query, recordsPerPage)
	if err != nil {
		return nil, err
	}
	return pagination.NewRecords(cursor, func(p AddressesPage) []Address {
		out := make([]Address, len(p.Addresses))
		for i := range p.Addresses {
			out[i] = p.Addresses[i].Address
		}
		return out
	}), nil
}

// GetAddresses fetches every address
func (c *Coinbase) GetAddresses(ctx context.Context, accountID, query string, recordsPerPage int) ([]Address, error) {
	records, err := c.GetAddressesList(accountID, query, orDefault(recordsPerPage, defaultFetchAllRecordsPerPage))
	if err != nil {
		return nil, err
	}
	return records.ToSlice(ctx)
}

// GetApplicationPagesList returns a cursor over the pages of the OAuth
// applications list
func (c *Coinbase) GetApplicationPagesList() (*pagination.Cursor[ApplicationsPage], error) {
	return newCursor[ApplicationsPage](c, coinbaseApplications, 0, nil)
}

// GetApplicationPages fetches every page of the applications list
func (c *Coinbase) GetApplicationPages(ctx context.Context) ([]ApplicationsPage, error) {
	cursor, err := c.GetApplicationPagesList()
	if err != nil {
		return nil, err
	}
	return allPages(ctx, c, cursor)
}

// GetApplicationsList returns the applications as a flat sequence fetched on
// demand
func (c *Coinbase) GetApplicationsList() (*pagination.Records[ApplicationsPage, Application], error) {
	cursor, err := c.GetApplicationPagesList()
	if err != nil {
		return nil, err
	}
	return pagination.NewRecords(cursor, func(p ApplicationsPage) []Application { return p.Applications }), nil
}

// GetApplications fetches every application
func (c *Coinbase) GetApplications(ctx context.Context) ([]Application, error) {
	records, err := c.GetApplicationsList()
	if err != nil {
		return nil, err
	}
	return records.ToSlice(ctx)
}

// GetContactPagesList returns a cursor over the pages of the contacts list. A
// recordsPerPage of zero uses 25.
func (c *Coinbase) GetContactPagesList(query string, recordsPerPage int) (*pagination.Cursor[ContactsPage], error) {
	return newCursor[ContactsPage](c, coinbaseContacts, orDefault(recordsPerPage, defaultRecordsPerPage), filterParams("", query))
}

// GetContactPages fetches every page of the contacts list
func (c *Coinbase) GetContactPages(ctx context.Context, query string, recordsPerPage int) ([]ContactsPage, error) {
	cursor, err := c.GetContactPagesList(query, orDefault(recordsPerPage, defaultFetchAllRecordsPerPage))
	if err != nil {
		return nil, err
	}
	return allPages(ctx, c, cursor)
}

// GetContactsList returns the contacts as a flat sequence fetched on demand
func (c *Coinbase) GetContactsList(query string, recordsPerPage int) (*pagination.Records[ContactsPage, Contact], error) {
	cursor, err := c.GetContactPagesList(query, recordsPerPage)
	if err != nil {
		return nil, err
	}
	return pagination.NewRecords(cursor, func(p ContactsPage) []Contact {
		out := make([]Contact, len(p.Contacts))
		for i := range p.Contacts {
			out[i] = p.Contacts[i].Contact
		}
		return out
	}), nil
}

// GetContacts fetches every contact
func (c *Coinbase) GetContacts(ctx context.Context, query string, recordsPerPage int) ([]Contact, error) {
	records, err := c.GetContactsList(query, orDefault(recordsPerPage, defaultFetchAllRecordsPerPage))
	if err != nil {
		return nil, err
	}
	return records.ToSlice(ctx)
}
