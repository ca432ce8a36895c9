package pagination

import "context"

// Records flattens the pages of a resource into a single 0-indexed sequence of
// leaf records using a projection from page to records.
//
// ItemAt locates a record by dividing its index by the number of records on
// the first page, so it assumes every page but the last holds the same number
// of records. Enumeration through ToSlice or Range does not depend on this.
type Records[P Page, R any] struct {
	pages   *Pages[P]
	project func(P) []R
}

// NewRecords returns a record list over the resource of cursor
func NewRecords[P Page, R any](cursor *Cursor[P], project func(P) []R) *Records[P, R] {
	return &Records[P, R]{pages: NewPages(cursor), project: project}
}

// Pages returns the underlying page list
func (r *Records[P, R]) Pages() *Pages[P] {
	return r.pages
}

// Count returns the total number of records
func (r *Records[P, R]) Count(ctx context.Context) (int, error) {
	return r.pages.TotalCount(ctx)
}

// ItemAt returns the record at index
func (r *Records[P, R]) ItemAt(ctx context.Context, index int) (R, error) {
	var empty R
	count, err := r.Count(ctx)
	if err != nil {
		return empty, err
	}
	if index < 0 || index >= count {
		return empty, r.outOfRange(index, count)
	}

	first, ok, err := r.pages.page(ctx, 0)
	if err != nil {
		return empty, err
	}
	if !ok {
		return empty, r.outOfRange(index, count)
	}
	perPage := len(r.project(first))
	if perPage == 0 {
		return empty, errEmptyPage
	}

	page, ok, err := r.pages.page(ctx, index/perPage)
	if err != nil {
		return empty, err
	}
	if !ok {
		return empty, r.outOfRange(index, count)
	}
	items := r.project(page)
	offset := index % perPage
	if offset >= len(items) {
		return empty, r.outOfRange(index, count)
	}
	return items[offset], nil
}

// ToSlice fetches all pages and returns their records in page order
func (r *Records[P, R]) ToSlice(ctx context.Context) ([]R, error) {
	pages, err := r.pages.ToSlice(ctx)
	if err != nil {
		return nil, err
	}
	var out []R
	for i := range pages {
		out = append(out, r.project(pages[i])...)
	}
	if out == nil {
		out = []R{}
	}
	return out, nil
}

// Range calls fn for each record in order, fetching pages one at a time. It
// stops early when fn returns false.
func (r *Records[P, R]) Range(ctx context.Context, fn func(R) bool) error {
	count, err := r.pages.Count(ctx)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		page, ok, err := r.pages.page(ctx, i)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		items := r.project(page)
		for j := range items {
			if !fn(items[j]) {
				return nil
			}
		}
	}
	return nil
}

func (r *Records[P, R]) outOfRange(index, count int) error {
	return &IndexOutOfRangeError{Endpoint: r.pages.origin.endpoint, Index: index, Count: count}
}
