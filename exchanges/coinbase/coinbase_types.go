package coinbase

import (
	"net/http"
	"time"

	"github.com/thrasher-corp/coinbasev1/currency"
	"github.com/thrasher-corp/coinbasev1/exchanges/pagination"
	"github.com/thrasher-corp/coinbasev1/exchanges/request"
)

// Coinbase is the overarching type across the coinbase package
type Coinbase struct {
	Name          string
	APIURL        string
	Verbose       bool
	HTTPDebugging bool
	*request.Requester
}

// Config holds the settings used to construct a Coinbase client
type Config struct {
	APIURL        string
	UserAgent     string
	HTTPTimeout   time.Duration
	HTTPClient    *http.Client
	Verbose       bool
	HTTPDebugging bool
}

// RequestResponse is the outcome envelope returned by mutating calls
type RequestResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// ShortUser identifies a user
type ShortUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// User holds the authenticated user's profile
type User struct {
	ShortUser
	TimeZone       string             `json:"time_zone"`
	NativeCurrency string             `json:"native_currency"`
	Balance        currency.BTCAmount `json:"balance"`
	BuyLevel       int                `json:"buy_level"`
	SellLevel      int                `json:"sell_level"`
	BuyLimit       currency.BTCAmount `json:"buy_limit"`
	SellLimit      currency.BTCAmount `json:"sell_limit"`
}

// UserResponse wraps a single user
type UserResponse struct {
	User User `json:"user"`
}

// UsersResponse is returned by the users endpoint
type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

// CreateUserDetails holds the new user's credentials
type CreateUserDetails struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	ReferrerID string `json:"referrer_id,omitempty"`
}

// CreateUserRequest registers a new user. When ClientID is set the user is
// authorised for that application straight away.
type CreateUserRequest struct {
	User     CreateUserDetails `json:"user"`
	ClientID string            `json:"client_id,omitempty"`
	Scopes   string            `json:"scopes,omitempty"`
}

// CreatedUser is the user returned after registration
type CreatedUser struct {
	ShortUser
	ReceiveAddress string `json:"receive_address"`
}

// CreateUserResponse is returned by CreateUser
type CreateUserResponse struct {
	RequestResponse
	User CreatedUser `json:"user"`
}

// UpdateUserDetails holds the profile fields to change, empty fields are left
// untouched
type UpdateUserDetails struct {
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	Pin            string `json:"pin,omitempty"`
	NativeCurrency string `json:"native_currency,omitempty"`
	TimeZone       string `json:"time_zone,omitempty"`
}

// UpdateUserRequest changes the current user's profile
type UpdateUserRequest struct {
	User UpdateUserDetails `json:"user"`
}

// UpdateUserResponse is returned by UpdateUser
type UpdateUserResponse struct {
	RequestResponse
	User User `json:"user"`
}

// Account holds a single wallet
type Account struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Balance       currency.BTCAmount    `json:"balance"`
	NativeBalance currency.NativeAmount `json:"native_balance"`
	CreatedAt     *time.Time            `json:"created_at"`
	Primary       bool                  `json:"primary"`
	Active        bool                  `json:"active"`
}

// AccountsPage is a page of the accounts list
type AccountsPage struct {
	pagination.Descriptor
	Accounts []Account `json:"accounts"`
}

// AccountDetails holds the mutable fields of an account
type AccountDetails struct {
	Name string `json:"name"`
}

// CreateAccountRequest creates a named account
type CreateAccountRequest struct {
	Account AccountDetails `json:"account"`
}

// UpdateAccountRequest renames an account
type UpdateAccountRequest struct {
	Account AccountDetails `json:"account"`
}

// AccountResponse is returned by account mutations
type AccountResponse struct {
	RequestResponse
	Account Account `json:"account"`
}

// Transaction is a single movement of funds
type Transaction struct {
	ID               string             `json:"id"`
	CreatedAt        time.Time          `json:"created_at"`
	Hash             string             `json:"hsh"`
	Amount           currency.BTCAmount `json:"amount"`
	Request          bool               `json:"request"`
	Status           TransactionStatus  `json:"status"`
	Sender           *ShortUser         `json:"sender"`
	Recipient        *ShortUser         `json:"recipient"`
	RecipientAddress string             `json:"recipient_address"`
}

// TransactionResponse wraps a single transaction
type TransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

// TransactionsPage is a page of the transactions list. The balance fields
// reflect the account the list was requested for.
type TransactionsPage struct {
	pagination.Descriptor
	CurrentUser   *ShortUser            `json:"current_user"`
	Balance       currency.BTCAmount    `json:"balance"`
	NativeBalance currency.NativeAmount `json:"native_balance"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// Fee is a fee charged in cents of a fiat currency
type Fee struct {
	Cents       int64  `json:"cents"`
	CurrencyISO string `json:"currency_iso"`
}

// Fees holds the fees charged on a transfer
type Fees struct {
	Coinbase Fee `json:"coinbase"`
	Bank     Fee `json:"bank"`
}

// Transfer is a buy or sell of bitcoin against a bank account
type Transfer struct {
	Type          TransferType          `json:"type"`
	Code          string                `json:"code"`
	CreatedAt     time.Time             `json:"created_at"`
	Fees          Fees                  `json:"fees"`
	PayoutDate    time.Time             `json:"payout_date"`
	TransactionID string                `json:"transaction_id"`
	Status        TransferStatus        `json:"status"`
	BTC           currency.BTCAmount    `json:"btc"`
	Subtotal      currency.NativeAmount `json:"subtotal"`
	Total         currency.NativeAmount `json:"total"`
	Description   string                `json:"description"`
}

// TransferResponse wraps a single transfer
type TransferResponse struct {
	Transfer Transfer `json:"transfer"`
}

// TransfersPage is a page of the transfers list
type TransfersPage struct {
	pagination.Descriptor
	Transfers []TransferResponse `json:"transfers"`
}

// Address is a bitcoin receive address
type Address struct {
	Address     string    `json:"address"`
	CallbackURL string    `json:"callback_url"`
	Label       string    `json:"label"`
	CreatedAt   time.Time `json:"created_at"`
}

// AddressResponse wraps a single address
type AddressResponse struct {
	Address Address `json:"address"`
}

// AddressesPage is a page of the addresses list
type AddressesPage struct {
	pagination.Descriptor
	Addresses []AddressResponse `json:"addresses"`
}

// Application is an OAuth application owned by the user
type Application struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	RedirectURI string    `json:"redirect_uri"`
	NumUsers    int       `json:"num_users"`
}

// ApplicationsPage is a page of the applications list. Unlike the single
// application endpoint the list items are not wrapped.
type ApplicationsPage struct {
	pagination.Descriptor
	Applications []Application `json:"applications"`
}

// ApplicationResponse wraps a single application
type ApplicationResponse struct {
	Application Application `json:"application"`
}

// ApplicationDetails holds the fields of a new application
type ApplicationDetails struct {
	Name        string `json:"name"`
	RedirectURI string `json:"redirect_uri"`
}

// CreateApplicationRequest registers an OAuth application
type CreateApplicationRequest struct {
	Application ApplicationDetails `json:"application"`
}

// CreateApplicationResponse is returned by CreateApplication
type CreateApplicationResponse struct {
	RequestResponse
	Application Application `json:"application"`
}

// Contact is an address book entry
type Contact struct {
	Email string `json:"email"`
}

// ContactResponse wraps a single contact
type ContactResponse struct {
	Contact Contact `json:"contact"`
}

// ContactsPage is a page of the contacts list
type ContactsPage struct {
	pagination.Descriptor
	Contacts []ContactResponse `json:"contacts"`
}

// PaymentMethod is a linked bank account or card
type PaymentMethod struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	CanBuy  bool   `json:"can_buy"`
	CanSell bool   `json:"can_sell"`
}

// PaymentMethodResponse wraps a single payment method
type PaymentMethodResponse struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// PaymentMethodsResponse lists payment methods with the default choices
type PaymentMethodsResponse struct {
	PaymentMethods []PaymentMethodResponse `json:"payment_methods"`
	DefaultBuy     string                  `json:"default_buy"`
	DefaultSell    string                  `json:"default_sell"`
}
