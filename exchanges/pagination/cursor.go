package pagination

import (
	"context"
	"net/url"
	"strconv"

	"github.com/thrasher-corp/coinbasev1/log"
	"golang.org/x/sync/errgroup"
)

// Cursor is an immutable position in a server paginated resource. Advancing
// returns a new Cursor sharing the request parameters of its origin.
type Cursor[T Page] struct {
	fetch    Fetcher
	endpoint string
	pageSize int
	params   url.Values
	state    State
	response T
}

// NewCursor returns a cursor in the Begin state. A pageSize of zero omits the
// limit parameter. params is copied and never mutated.
func NewCursor[T Page](fetch Fetcher, endpoint string, pageSize int, params url.Values) (*Cursor[T], error) {
	if fetch == nil {
		return nil, errFetcherIsNil
	}
	return &Cursor[T]{
		fetch:    fetch,
		endpoint: endpoint,
		pageSize: pageSize,
		params:   cloneValues(params),
		state:    Begin,
	}, nil
}

// Begin returns a fresh cursor over the same resource and parameters
func (c *Cursor[T]) Begin() *Cursor[T] {
	return c.with(Begin, *new(T))
}

// State returns the cursor state
func (c *Cursor[T]) State() State {
	return c.state
}

// IsBegin returns whether no page has been fetched
func (c *Cursor[T]) IsBegin() bool {
	return c.state == Begin
}

// IsEnd returns whether the cursor is past the last page
func (c *Cursor[T]) IsEnd() bool {
	return c.state == End
}

// Response returns the page held by a positioned cursor
func (c *Cursor[T]) Response() (T, bool) {
	return c.response, c.state == Positioned
}

// Descriptor returns the pagination envelope of a positioned cursor
func (c *Cursor[T]) Descriptor() Descriptor {
	if c.state != Positioned {
		return Descriptor{}
	}
	return c.response.GetDescriptor()
}

// Endpoint returns the resource path
func (c *Cursor[T]) Endpoint() string {
	return c.endpoint
}

// PageSize returns the requested page size, zero when unset
func (c *Cursor[T]) PageSize() int {
	return c.pageSize
}

// Params returns a copy of the filter parameters
func (c *Cursor[T]) Params() url.Values {
	return cloneValues(c.params)
}

// CannotContinue returns whether there are no further pages to fetch
func (c *Cursor[T]) CannotContinue() bool {
	switch c.state {
	case End:
		return true
	case Positioned:
		d := c.response.GetDescriptor()
		return d.CurrentPage >= d.NumPages
	default:
		return false
	}
}

// GetPage fetches page n, starting from 1. A page beyond the count observed by
// a positioned cursor fails without a request; re-query page 1 to pick up pages
// added since. An End cursor is returned when the server reports a page past
// the last one.
func (c *Cursor[T]) GetPage(ctx context.Context, n int) (*Cursor[T], error) {
	if n < 1 {
		return nil, &OutOfPageRangeError{Endpoint: c.endpoint, Requested: n, NumPages: c.Descriptor().NumPages}
	}
	if c.state == Positioned {
		if numPages := c.response.GetDescriptor().NumPages; n > numPages {
			return nil, &OutOfPageRangeError{Endpoint: c.endpoint, Requested: n, NumPages: numPages}
		}
	}

	params := cloneValues(c.params)
	params.Set(pageParam, strconv.Itoa(n))
	if c.pageSize > 0 {
		params.Set(limitParam, strconv.Itoa(c.pageSize))
	}

	var resp T
	if err := c.fetch(ctx, c.endpoint, params, &resp); err != nil {
		return nil, err
	}
	if d := resp.GetDescriptor(); d.CurrentPage > d.NumPages {
		return c.with(End, *new(T)), nil
	}
	return c.with(Positioned, resp), nil
}

// GetNextPage fetches the page after the cursor, or page 1 from Begin. A
// cursor that cannot continue returns End without a request.
func (c *Cursor[T]) GetNextPage(ctx context.Context) (*Cursor[T], error) {
	switch {
	case c.state == Begin:
		return c.GetPage(ctx, 1)
	case c.CannotContinue():
		return c.with(End, *new(T)), nil
	default:
		return c.GetPage(ctx, c.response.GetDescriptor().CurrentPage+1)
	}
}

// GetRemainingResponses fetches every page after the cursor concurrently and
// returns them in ascending page order. From Begin, page 1 is fetched first to
// learn the page count and is included in the result. The first failure
// cancels the outstanding fetches.
func (c *Cursor[T]) GetRemainingResponses(ctx context.Context) ([]T, error) {
	if c.state == Begin {
		first, err := c.GetPage(ctx, 1)
		if err != nil {
			return nil, err
		}
		if first.IsEnd() {
			return []T{}, nil
		}
		rest, err := first.GetRemainingResponses(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T{first.response}, rest...), nil
	}
	if c.CannotContinue() {
		return []T{}, nil
	}

	d := c.response.GetDescriptor()
	remaining := d.NumPages - d.CurrentPage
	log.Debugf(log.PaginationSys, "%s fetching pages %d to %d concurrently", c.endpoint, d.CurrentPage+1, d.NumPages)

	responses := make([]*Cursor[T], remaining)
	g, gctx := errgroup.WithContext(ctx)
	for i := range responses {
		i := i
		g.Go(func() error {
			next, err := c.GetPage(gctx, d.CurrentPage+1+i)
			if err != nil {
				return err
			}
			responses[i] = next
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]T, 0, remaining)
	for i := range responses {
		// pages can disappear when records are removed between requests
		if responses[i].IsEnd() {
			log.Warnf(log.PaginationSys, "%s page %d no longer exists", c.endpoint, d.CurrentPage+1+i)
			continue
		}
		out = append(out, responses[i].response)
	}
	return out, nil
}

// GetRemainingPages is GetRemainingResponses with each page wrapped in a
// positioned cursor, so any of them can be continued from
func (c *Cursor[T]) GetRemainingPages(ctx context.Context) ([]*Cursor[T], error) {
	responses, err := c.GetRemainingResponses(ctx)
	if err != nil {
		return nil, err
	}
	pages := make([]*Cursor[T], len(responses))
	for i := range responses {
		pages[i] = c.with(Positioned, responses[i])
	}
	return pages, nil
}

func (c *Cursor[T]) with(state State, response T) *Cursor[T] {
	return &Cursor[T]{
		fetch:    c.fetch,
		endpoint: c.endpoint,
		pageSize: c.pageSize,
		params:   c.params,
		state:    state,
		response: response,
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
