package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/shared/constants"
)

// Pagination holds parsed page-based pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the row offset of the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Window holds limit/offset parameters for feed style listings.
type Window struct {
	Limit  int
	Offset int
}

// ParsePagination reads page and page_size from the query string. page_size
// falls back to defaultPageSize and is capped at maxPageSize.
func ParsePagination(c *gin.Context, defaultPageSize, maxPageSize int) Pagination {
	defaultPageSize, maxPageSize = normalizeLimits(defaultPageSize, maxPageSize)
	page := parseQueryInt(c, "page", constants.DefaultPage, 1)
	pageSize := parseQueryInt(c, "page_size", defaultPageSize, 1)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// ParseWindow reads limit and offset from the query string.
func ParseWindow(c *gin.Context, defaultLimit, maxLimit int) Window {
	defaultLimit, maxLimit = normalizeLimits(defaultLimit, maxLimit)
	limit := parseQueryInt(c, "limit", defaultLimit, 1)
	if limit > maxLimit {
		limit = maxLimit
	}
	return Window{
		Limit:  limit,
		Offset: parseQueryInt(c, "offset", 0, 0),
	}
}

// ParseQueryDays reads a positive "days" query parameter, capped at max.
func ParseQueryDays(c *gin.Context, defaultDays, maxDays int) int {
	days := parseQueryInt(c, "days", defaultDays, 1)
	if days > maxDays {
		days = maxDays
	}
	return days
}

func normalizeLimits(def, max int) (int, int) {
	if def < 1 {
		def = constants.DefaultPageSize
	}
	if max < 1 {
		max = constants.MaxPageSize
	}
	if def > max {
		def = max
	}
	return def, max
}

// parseQueryInt parses an integer query parameter. Values below min or not
// parseable fall back to defaultVal.
func parseQueryInt(c *gin.Context, key string, defaultVal, min int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= min {
			return n
		}
	}
	return defaultVal
}
