package paging

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceIndices(t *testing.T) {
	tests := []struct {
		name               string
		page, size, total  int
		wantStart, wantEnd int
	}{
		{name: "first page", page: 1, size: 10, total: 15, wantStart: 0, wantEnd: 10},
		{name: "partial last page", page: 2, size: 10, total: 15, wantStart: 10, wantEnd: 15},
		{name: "past the end", page: 5, size: 10, total: 15, wantStart: 15, wantEnd: 15},
		{name: "page below one", page: 0, size: 2, total: 3, wantStart: 0, wantEnd: 2},
		{name: "default size", page: 1, size: 0, total: 25, wantStart: 0, wantEnd: 10},
		{name: "empty list", page: 3, size: 5, total: 0, wantStart: 0, wantEnd: 0},
		{name: "huge page", page: math.MaxInt/2 + 2, size: 2, total: 3, wantStart: 3, wantEnd: 3},
		{name: "max page", page: math.MaxInt, size: 1, total: 3, wantStart: 3, wantEnd: 3},
		{name: "huge size", page: 1, size: math.MaxInt, total: 3, wantStart: 0, wantEnd: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := SliceIndices(tt.page, tt.size, tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
