package coinbase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is matched by ValidationError
var ErrValidation = errors.New("request validation failed")

var validate = validator.New()

// ValidationError lists the request fields that failed their checks
type ValidationError struct {
	Type   string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s invalid fields: %s", ErrValidation, e.Type, strings.Join(e.Fields, ", "))
}

// Is allows errors.Is(err, ErrValidation) to match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// validatable is implemented by request bodies that check themselves before
// being sent
type validatable interface {
	Validate() error
}

type fieldCheck struct {
	name  string
	value any
	tag   string
}

func checkFields(typ string, checks ...fieldCheck) error {
	var failed []string
	for i := range checks {
		if err := validate.Var(checks[i].value, checks[i].tag); err != nil {
			failed = append(failed, checks[i].name)
		}
	}
	if len(failed) > 0 {
		return &ValidationError{Type: typ, Fields: failed}
	}
	return nil
}

// Validate checks the new user has an email and password
func (r *CreateUserRequest) Validate() error {
	return checkFields("CreateUserRequest",
		fieldCheck{"user.email", r.User.Email, "required,email"},
		fieldCheck{"user.password", r.User.Password, "required"},
	)
}

// Validate checks any email being set is well formed. All other fields are
// optional.
func (r *UpdateUserRequest) Validate() error {
	return checkFields("UpdateUserRequest",
		fieldCheck{"user.email", r.User.Email, "omitempty,email"},
		fieldCheck{"user.native_currency", r.User.NativeCurrency, "omitempty,len=3"},
	)
}

// Validate checks the account is named
func (r *CreateAccountRequest) Validate() error {
	return checkFields("CreateAccountRequest",
		fieldCheck{"account.name", r.Account.Name, "required"},
	)
}

// Validate checks the account is named
func (r *UpdateAccountRequest) Validate() error {
	return checkFields("UpdateAccountRequest",
		fieldCheck{"account.name", r.Account.Name, "required"},
	)
}

// Validate checks the application has a name and a redirect URI
func (r *CreateApplicationRequest) Validate() error {
	return checkFields("CreateApplicationRequest",
		fieldCheck{"application.name", r.Application.Name, "required"},
		fieldCheck{"application.redirect_uri", r.Application.RedirectURI, "required,uri"},
	)
}
