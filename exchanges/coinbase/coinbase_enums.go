package coinbase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thrasher-corp/coinbasev1/encoding/json"
)

var (
	errUnknownTransactionStatus = errors.New("unknown transaction status")
	errUnknownTransferType      = errors.New("unknown transfer type")
	errUnknownTransferStatus    = errors.New("unknown transfer status")
)

// TransactionStatus is the settlement state of a transaction
type TransactionStatus uint8

// Transaction statuses
const (
	TransactionStatusPending TransactionStatus = iota + 1
	TransactionStatusComplete
)

var transactionStatusNames = map[TransactionStatus]string{
	TransactionStatusPending:  "pending",
	TransactionStatusComplete: "complete",
}

// String implements fmt.Stringer
func (s TransactionStatus) String() string {
	if n, ok := transactionStatusNames[s]; ok {
		return n
	}
	return "unknown"
}

// MarshalJSON encodes the status as its wire name
func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	n, ok := transactionStatusNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errUnknownTransactionStatus, s)
	}
	return json.Marshal(n)
}

// UnmarshalJSON decodes the wire name of a status
func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, transactionStatusNames, errUnknownTransactionStatus)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// TransferType is the direction of a transfer
type TransferType uint8

// Transfer types
const (
	TransferTypeBuy TransferType = iota + 1
	TransferTypeSell
)

var transferTypeNames = map[TransferType]string{
	TransferTypeBuy:  "Buy",
	TransferTypeSell: "Sell",
}

// String implements fmt.Stringer
func (t TransferType) String() string {
	if n, ok := transferTypeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// MarshalJSON encodes the type as its wire name
func (t TransferType) MarshalJSON() ([]byte, error) {
	n, ok := transferTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errUnknownTransferType, t)
	}
	return json.Marshal(n)
}

// UnmarshalJSON decodes the wire name of a type
func (t *TransferType) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, transferTypeNames, errUnknownTransferType)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TransferStatus is the processing state of a transfer
type TransferStatus uint8

// Transfer statuses
const (
	TransferStatusPending TransferStatus = iota + 1
	TransferStatusCompleted
	TransferStatusCanceled
	TransferStatusReversed
)

var transferStatusNames = map[TransferStatus]string{
	TransferStatusPending:   "Pending",
	TransferStatusCompleted: "Completed",
	TransferStatusCanceled:  "Canceled",
	TransferStatusReversed:  "Reversed",
}

// String implements fmt.Stringer
func (s TransferStatus) String() string {
	if n, ok := transferStatusNames[s]; ok {
		return n
	}
	return "Unknown"
}

// MarshalJSON encodes the status as its wire name
func (s TransferStatus) MarshalJSON() ([]byte, error) {
	n, ok := transferStatusNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errUnknownTransferStatus, s)
	}
	return json.Marshal(n)
}

// UnmarshalJSON decodes the wire name of a status
func (s *TransferStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, transferStatusNames, errUnknownTransferStatus)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// decodeEnum matches a JSON string against names case insensitively. null
// decodes to the zero value.
func decodeEnum[E comparable](data []byte, names map[E]string, errUnknown error) (E, error) {
	var zero E
	if string(data) == "null" {
		return zero, nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return zero, err
	}
	for k, n := range names {
		if strings.EqualFold(n, raw) {
			return k, nil
		}
	}
	return zero, fmt.Errorf("%w: %q", errUnknown, raw)
}
