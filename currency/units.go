package currency

// Unit is a bitcoin denomination. Exponent is the number of decimal places the
// unit carries, such that one unit equals 10^Exponent satoshis.
type Unit interface {
	Code() string
	Exponent() int32
}

// BTC is one bitcoin
type BTC struct{}

// MilliBTC is one thousandth of a bitcoin
type MilliBTC struct{}

// MicroBTC is one millionth of a bitcoin
type MicroBTC struct{}

// Satoshi is the smallest representable bitcoin denomination
type Satoshi struct{}

// Code returns the unit code
func (BTC) Code() string { return "BTC" }

// Exponent returns the decimal places carried by the unit
func (BTC) Exponent() int32 { return 8 }

// Code returns the unit code
func (MilliBTC) Code() string { return "mBTC" }

// Exponent returns the decimal places carried by the unit
func (MilliBTC) Exponent() int32 { return 5 }

// Code returns the unit code
func (MicroBTC) Code() string { return "µBTC" }

// Exponent returns the decimal places carried by the unit
func (MicroBTC) Exponent() int32 { return 2 }

// Code returns the unit code
func (Satoshi) Code() string { return "satoshi" }

// Exponent returns the decimal places carried by the unit
func (Satoshi) Exponent() int32 { return 0 }
