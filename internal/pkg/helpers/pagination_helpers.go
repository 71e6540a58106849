package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusclubs/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// ClampPage bounds page to [1, MaxInt32/limit] so (page-1)*limit stays
// inside a postgres bigint and an int on every platform.
func ClampPage(page, limit int) int {
	if page < 1 {
		return DefaultPage
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if maxPage := math.MaxInt32 / limit; page > maxPage {
		return maxPage
	}
	return page
}

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	if size <= 0 || size > MaxPageSize {
		limit = DefaultPageSize
	} else {
		limit = size
	}

	page = ClampPage(page, limit)

	offset = uint64(page-1) * uint64(limit)
	return offset, limit
}

// TotalPages is ceil(total/limit); zero items means zero pages.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// NewPaginationInfo creates the pagination block for a 1-based page.
func NewPaginationInfo(total int64, page, limit int) dto.PaginationInfo {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	return dto.PaginationInfo{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
		HasMore:    int64(page) < int64(TotalPages(total, limit)),
	}
}

// ParsePaginationParams reads page and limit from the query string, falling
// back to defaultLimit when limit is absent or out of range.
func ParsePaginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 || limit > MaxPageSize {
		limit = defaultLimit
	}

	return ClampPage(page, limit), limit
}
