package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/coinbasev1/encoding/json"
)

const btcCode = "BTC"

type wireAmount struct {
	Amount   *decimal.Decimal `json:"amount"`
	Currency string           `json:"currency"`
}

// MarshalJSON encodes the amount in the exchange money format, which is always
// denominated in BTC
func (a Amount[U]) MarshalJSON() ([]byte, error) {
	btc := Convert[BTC](a)
	return json.Marshal(struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}{
		Amount:   btc.value.StringFixed(BTC{}.Exponent()),
		Currency: btcCode,
	})
}

// UnmarshalJSON decodes the exchange money format. The amount may be a string
// or a number and the currency must be BTC.
func (a *Amount[U]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var w wireAmount
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Currency != btcCode {
		return fmt.Errorf("%w: %q, expected %s", ErrUnsupportedCurrency, w.Currency, btcCode)
	}
	if w.Amount == nil {
		return errAmountNotFound
	}
	*a = Convert[U](NewAmount[BTC](*w.Amount))
	return nil
}

// NativeAmount is a monetary value in the user's native currency
type NativeAmount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// String returns the amount followed by its currency
func (n NativeAmount) String() string {
	return n.Amount.String() + " " + n.Currency
}
