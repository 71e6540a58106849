package client

import (
	"github.com/yigit/campusclubs/internal/pkg/paging"
)

// Pager tracks the current page of a server-paged list
type Pager struct {
	Page       int
	TotalPages int
}

// PagerFrom builds a Pager from a response's pagination block
func PagerFrom(p Pagination) Pager {
	return Pager{Page: p.Page, TotalPages: p.TotalPages}
}

// PrevDisabled is true on the first page
func (p Pager) PrevDisabled() bool {
	return p.Page <= 1
}

// NextDisabled is true on or past the last page
func (p Pager) NextDisabled() bool {
	return p.Page >= p.TotalPages
}

// Next returns the following page, or the current one when at the end
func (p Pager) Next() int {
	if p.NextDisabled() {
		return p.Page
	}
	return p.Page + 1
}

// Prev returns the previous page, or 1
func (p Pager) Prev() int {
	if p.PrevDisabled() {
		return 1
	}
	return p.Page - 1
}

// SlicePage returns page (1-based) of items for lists paged on the client.
func SlicePage[T any](items []T, page, size int) []T {
	start, end := paging.SliceIndices(page, size, len(items))
	return items[start:end]
}
