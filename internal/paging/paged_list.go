// Package paging holds the page value object every listing endpoint returns.
// A PagedList is built once and never mutated, so it can be shared freely.
package paging

import (
	"encoding/json"
	"errors"
	"iter"
	"math"
	"slices"
)

// ErrNilSource is returned by New when there is no source collection at all.
// An empty, non-nil slice is a valid source and yields an empty page.
var ErrNilSource = errors.New("paging: source is nil")

// PagedList is one page of an ordered collection plus the metadata needed to
// render navigation around it.
type PagedList[T any] struct {
	items      []T
	pageIndex  int
	pageSize   int
	totalCount int
	totalPages int
}

// New windows a fully materialized source: it counts the whole slice, then
// keeps pageSize items starting at pageIndex*pageSize.
//
// pageSize <= 0 is clamped to 1 and a negative pageIndex to 0; a page past the
// end is empty rather than an error.
func New[T any](source []T, pageIndex, pageSize int) (PagedList[T], error) {
	if source == nil {
		return PagedList[T]{}, ErrNilSource
	}
	pageIndex, pageSize = normalize(pageIndex, pageSize)

	p := PagedList[T]{
		pageIndex:  pageIndex,
		pageSize:   pageSize,
		totalCount: len(source),
	}
	p.totalPages = ceilDiv(p.totalCount, pageSize)

	// Compare against the page count instead of multiplying first, so a huge
	// pageIndex cannot overflow the offset.
	if pageIndex < p.totalPages {
		start := pageIndex * pageSize
		end := min(start+pageSize, len(source))
		p.items = slices.Clone(source[start:end])
	}
	return p, nil
}

// NewWithTotal attaches metadata to a page that was already windowed upstream,
// typically by LIMIT/OFFSET in SQL with the total from a separate count.
//
// source is kept as-is. Nothing checks that len(source) fits pageSize; passing
// an unwindowed source here is a caller bug.
func NewWithTotal[T any](source []T, pageIndex, pageSize, totalCount int) PagedList[T] {
	pageIndex, pageSize = normalize(pageIndex, pageSize)
	if totalCount < 0 {
		totalCount = 0
	}
	return PagedList[T]{
		items:      slices.Clone(source),
		pageIndex:  pageIndex,
		pageSize:   pageSize,
		totalCount: totalCount,
		totalPages: ceilDiv(totalCount, pageSize),
	}
}

// Map projects every item through fn and keeps the pagination metadata.
func Map[T, U any](p PagedList[T], fn func(T) U) PagedList[U] {
	out := PagedList[U]{
		pageIndex:  p.pageIndex,
		pageSize:   p.pageSize,
		totalCount: p.totalCount,
		totalPages: p.totalPages,
	}
	if len(p.items) > 0 {
		out.items = make([]U, len(p.items))
		for i, it := range p.All() {
			out.items[i] = fn(it)
		}
	}
	return out
}

// Items returns a copy of the page contents in source order.
func (p PagedList[T]) Items() []T {
	if p.items == nil {
		return []T{}
	}
	return slices.Clone(p.items)
}

// All iterates the page contents without copying them.
func (p PagedList[T]) All() iter.Seq2[int, T] { return slices.All(p.items) }

func (p PagedList[T]) Len() int        { return len(p.items) }
func (p PagedList[T]) PageIndex() int  { return p.pageIndex }
func (p PagedList[T]) PageSize() int   { return max(p.pageSize, 1) }
func (p PagedList[T]) TotalCount() int { return p.totalCount }
func (p PagedList[T]) TotalPages() int { return p.totalPages }

// Offset is the number of source items that precede this page. It saturates
// at math.MaxInt instead of wrapping for absurd page indexes.
func (p PagedList[T]) Offset() int {
	size := p.PageSize()
	if p.pageIndex > math.MaxInt/size {
		return math.MaxInt
	}
	return p.pageIndex * size
}

func (p PagedList[T]) HasPreviousPage() bool { return p.pageIndex > 0 }

// HasNextPage compares against totalPages-1; totalPages is never negative, so
// neither side can overflow.
func (p PagedList[T]) HasNextPage() bool { return p.pageIndex < p.totalPages-1 }

type pagedListJSON[T any] struct {
	Items           []T  `json:"items"`
	PageIndex       int  `json:"page_index"`
	PageSize        int  `json:"page_size"`
	TotalCount      int  `json:"total_count"`
	TotalPages      int  `json:"total_pages"`
	HasPreviousPage bool `json:"has_previous_page"`
	HasNextPage     bool `json:"has_next_page"`
}

// MarshalJSON renders the page with its navigation flags precomputed so
// clients never redo the arithmetic.
func (p PagedList[T]) MarshalJSON() ([]byte, error) {
	items := p.items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(pagedListJSON[T]{
		Items:           items,
		PageIndex:       p.pageIndex,
		PageSize:        p.PageSize(),
		TotalCount:      p.totalCount,
		TotalPages:      p.totalPages,
		HasPreviousPage: p.HasPreviousPage(),
		HasNextPage:     p.HasNextPage(),
	})
}

func normalize(pageIndex, pageSize int) (int, int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	if pageIndex < 0 {
		pageIndex = 0
	}
	return pageIndex, pageSize
}

func ceilDiv(total, size int) int {
	pages := total / size
	if total%size > 0 {
		pages++
	}
	return pages
}
