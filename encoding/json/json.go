package json

import "encoding/json"

// Implementation aliases; all client code imports this package so the codec
// can be swapped in one place
var (
	// Marshal is an alias for json.Marshal
	Marshal = json.Marshal
	// Unmarshal is an alias for json.Unmarshal
	Unmarshal = json.Unmarshal
	// MarshalIndent is an alias for json.MarshalIndent
	MarshalIndent = json.MarshalIndent
	// NewEncoder is an alias for json.NewEncoder
	NewEncoder = json.NewEncoder
	// NewDecoder is an alias for json.NewDecoder
	NewDecoder = json.NewDecoder
	// Valid is an alias for json.Valid
	Valid = json.Valid
)

type (
	// RawMessage is an alias for json.RawMessage
	RawMessage = json.RawMessage
	// Marshaler is an alias for json.Marshaler
	Marshaler = json.Marshaler
	// Unmarshaler is an alias for json.Unmarshaler
	Unmarshaler = json.Unmarshaler
	// UnmarshalTypeError is an alias for json.UnmarshalTypeError
	UnmarshalTypeError = json.UnmarshalTypeError
)
