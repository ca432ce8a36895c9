package pagination

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

type slot[T Page] struct {
	page    T
	fetched bool
}

// Pages is a lazily fetched, 0-indexed list of the pages of a resource.
// Fetched pages are cached and reused.
type Pages[T Page] struct {
	origin *Cursor[T]

	mu    sync.Mutex
	cache []slot[T]
}

// NewPages returns a page list over the resource of cursor
func NewPages[T Page](cursor *Cursor[T]) *Pages[T] {
	return &Pages[T]{origin: cursor.Begin()}
}

// Cursor returns a Begin cursor over the resource
func (p *Pages[T]) Cursor() *Cursor[T] {
	return p.origin
}

// Count returns the number of pages, fetching the first page if needed
func (p *Pages[T]) Count(ctx context.Context) (int, error) {
	first, ok, err := p.page(ctx, 0)
	if err != nil || !ok {
		return 0, err
	}
	return first.GetDescriptor().NumPages, nil
}

// TotalCount returns the number of records across all pages as reported by
// the first page
func (p *Pages[T]) TotalCount(ctx context.Context) (int, error) {
	first, ok, err := p.page(ctx, 0)
	if err != nil || !ok {
		return 0, err
	}
	return first.GetDescriptor().TotalCount, nil
}

// PageAt returns the page at index, where index 0 is page 1
func (p *Pages[T]) PageAt(ctx context.Context, index int) (T, error) {
	page, ok, err := p.page(ctx, index)
	if err != nil {
		return page, err
	}
	if !ok {
		count, err := p.Count(ctx)
		if err != nil {
			return page, err
		}
		return page, &IndexOutOfRangeError{Endpoint: p.origin.endpoint, Index: index, Count: count}
	}
	return page, nil
}

// ToSlice fetches every uncached page concurrently and returns all pages in
// order
func (p *Pages[T]) ToSlice(ctx context.Context) ([]T, error) {
	count, err := p.Count(ctx)
	if err != nil {
		return nil, err
	}
	pages := make([]T, count)
	found := make([]bool, count)
	g, gctx := errgroup.WithContext(ctx)
	for i := range pages {
		i := i
		g.Go(func() error {
			page, ok, err := p.page(gctx, i)
			if err != nil {
				return err
			}
			pages[i], found[i] = page, ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := pages[:0]
	for i := range pages {
		if found[i] {
			out = append(out, pages[i])
		}
	}
	return out, nil
}

// page returns the cached page at index or fetches it. ok is false when the
// server reports no such page.
func (p *Pages[T]) page(ctx context.Context, index int) (page T, ok bool, err error) {
	if index < 0 {
		return page, false, nil
	}
	p.mu.Lock()
	if index < len(p.cache) && p.cache[index].fetched {
		page = p.cache[index].page
		p.mu.Unlock()
		return page, true, nil
	}
	p.mu.Unlock()

	c, err := p.origin.GetPage(ctx, index+1)
	if err != nil {
		return page, false, err
	}
	page, ok = c.Response()
	if !ok {
		return page, false, nil
	}
	if page.GetDescriptor().CurrentPage == index+1 {
		p.store(index, page)
	}
	return page, true, nil
}

// store caches page at index. Concurrent fetches of the same index write
// equivalent content so the last write wins.
func (p *Pages[T]) store(index int, page T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index >= len(p.cache) {
		grown := make([]slot[T], index+1)
		copy(grown, p.cache)
		p.cache = grown
	}
	p.cache[index] = slot[T]{page: page, fetched: true}
}
