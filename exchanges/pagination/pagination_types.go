package pagination

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

const (
	pageParam  = "page"
	limitParam = "limit"
)

var (
	// ErrPageOutOfRange is matched by OutOfPageRangeError
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrIndexOutOfRange is matched by IndexOutOfRangeError
	ErrIndexOutOfRange = errors.New("index out of range")

	errFetcherIsNil = errors.New("page fetcher is nil")
	errEmptyPage    = errors.New("first page holds no records")
)

// Descriptor is the pagination envelope carried by every list response
type Descriptor struct {
	TotalCount  int `json:"total_count"`
	NumPages    int `json:"num_pages"`
	CurrentPage int `json:"current_page"`
}

// GetDescriptor returns the pagination envelope
func (d Descriptor) GetDescriptor() Descriptor {
	return d
}

// Page is a decoded list response. Response types satisfy it by embedding
// Descriptor.
type Page interface {
	GetDescriptor() Descriptor
}

// Fetcher performs a GET of endpoint with params and decodes the body into
// result
type Fetcher func(ctx context.Context, endpoint string, params url.Values, result interface{}) error

// State is the position of a Cursor in a page sequence
type State uint8

// Cursor states
const (
	// Begin is a cursor from which no page has been fetched
	Begin State = iota
	// Positioned is a cursor holding a fetched page
	Positioned
	// End is the terminal cursor past the last page
	End
)

func (s State) String() string {
	switch s {
	case Begin:
		return "begin"
	case Positioned:
		return "positioned"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// OutOfPageRangeError is returned when a page beyond the last known page is
// requested
type OutOfPageRangeError struct {
	Endpoint  string
	Requested int
	NumPages  int
}

func (e *OutOfPageRangeError) Error() string {
	return fmt.Sprintf("%s %v: requested page %d of %d", e.Endpoint, ErrPageOutOfRange, e.Requested, e.NumPages)
}

// Is allows errors.Is(err, ErrPageOutOfRange) to match
func (e *OutOfPageRangeError) Is(target error) bool {
	return target == ErrPageOutOfRange
}

// IndexOutOfRangeError is returned when a record or page index is outside the
// collection
type IndexOutOfRangeError struct {
	Endpoint string
	Index    int
	Count    int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s %v: index %d of %d", e.Endpoint, ErrIndexOutOfRange, e.Index, e.Count)
}

// Is allows errors.Is(err, ErrIndexOutOfRange) to match
func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
