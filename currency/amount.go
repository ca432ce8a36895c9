package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnsupportedCurrency is returned when a monetary value is not denominated in BTC
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	errDivideByZero   = errors.New("cannot divide by zero")
	errAmountNotFound = errors.New("amount not found")
)

// Amount is a fixed precision bitcoin value expressed in unit U. The value is
// always truncated to the precision of one satoshi.
type Amount[U Unit] struct {
	value decimal.Decimal
}

// BTCAmount is an amount expressed in whole bitcoin
type BTCAmount = Amount[BTC]

func exponent[U Unit]() int32 {
	var u U
	return u.Exponent()
}

// NewAmount returns an amount of U truncated to satoshi precision
func NewAmount[U Unit](d decimal.Decimal) Amount[U] {
	return Amount[U]{value: d.Truncate(exponent[U]())}
}

// NewAmountFromString parses a decimal string into an amount of U
func NewAmountFromString[U Unit](s string) (Amount[U], error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount[U]{}, err
	}
	return NewAmount[U](d), nil
}

// FromSatoshis returns the amount of U equal to n satoshis
func FromSatoshis[U Unit](n int64) Amount[U] {
	return Amount[U]{value: decimal.New(n, -exponent[U]())}
}

// Convert expresses an amount in another unit without loss of precision
func Convert[To, From Unit](a Amount[From]) Amount[To] {
	return FromSatoshis[To](a.Satoshis())
}

// Value returns the decimal value in unit U
func (a Amount[U]) Value() decimal.Decimal {
	return a.value
}

// Satoshis returns the amount as a whole number of satoshis
func (a Amount[U]) Satoshis() int64 {
	return a.value.Shift(exponent[U]()).IntPart()
}

// Unit returns the unit code of the amount
func (a Amount[U]) Unit() string {
	var u U
	return u.Code()
}

// Add returns a + b
func (a Amount[U]) Add(b Amount[U]) Amount[U] {
	return Amount[U]{value: a.value.Add(b.value)}
}

// Sub returns a - b
func (a Amount[U]) Sub(b Amount[U]) Amount[U] {
	return Amount[U]{value: a.value.Sub(b.value)}
}

// Mul returns a scaled by factor, truncated to satoshi precision
func (a Amount[U]) Mul(factor decimal.Decimal) Amount[U] {
	return NewAmount[U](a.value.Mul(factor))
}

// Div returns a divided by divisor, truncated to satoshi precision
func (a Amount[U]) Div(divisor decimal.Decimal) (Amount[U], error) {
	if divisor.IsZero() {
		return Amount[U]{}, errDivideByZero
	}
	return NewAmount[U](a.value.DivRound(divisor, exponent[U]()+1)), nil
}

// Neg returns -a
func (a Amount[U]) Neg() Amount[U] {
	return Amount[U]{value: a.value.Neg()}
}

// IsZero returns whether the amount is zero
func (a Amount[U]) IsZero() bool {
	return a.value.IsZero()
}

// IsNegative returns whether the amount is below zero
func (a Amount[U]) IsNegative() bool {
	return a.value.IsNegative()
}

// Cmp compares a and b returning -1, 0 or 1
func (a Amount[U]) Cmp(b Amount[U]) int {
	return a.value.Cmp(b.value)
}

// Equal returns whether a and b represent the same value
func (a Amount[U]) Equal(b Amount[U]) bool {
	return a.value.Equal(b.value)
}

// String returns the value at full unit precision followed by its code
func (a Amount[U]) String() string {
	return fmt.Sprintf("%s %s", a.value.StringFixed(exponent[U]()), a.Unit())
}
