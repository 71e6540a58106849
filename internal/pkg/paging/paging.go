// Package paging slices in-memory lists into 1-based pages.
package paging

// DefaultSize is used when size is not positive
const DefaultSize = 10

// SliceIndices returns the [start, end) window of a 1-based page over
// totalItems. Pages past the end give an empty window at totalItems.
func SliceIndices(page, size, totalItems int) (start, end int) {
	if size <= 0 {
		size = DefaultSize
	}
	if page < 1 {
		page = 1
	}
	if totalItems <= 0 {
		return 0, 0
	}

	pages := totalItems / size
	if totalItems%size != 0 {
		pages++
	}
	if page-1 >= pages {
		return totalItems, totalItems
	}

	start = (page - 1) * size
	end = totalItems
	if size < totalItems-start {
		end = start + size
	}
	return start, end
}
