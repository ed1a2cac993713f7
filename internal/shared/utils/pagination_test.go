package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newQueryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults", query: "", wantPage: 1, wantPageSize: 20},
		{name: "explicit values", query: "page=3&page_size=50", wantPage: 3, wantPageSize: 50},
		{name: "page size capped", query: "page_size=500", wantPage: 1, wantPageSize: 100},
		{name: "invalid values fall back", query: "page=-2&page_size=abc", wantPage: 1, wantPageSize: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePagination(newQueryContext(tt.query), 20, 100)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
		})
	}

	assert.Equal(t, 40, Pagination{Page: 3, PageSize: 20}.Offset())
}

func TestParseWindow(t *testing.T) {
	w := ParseWindow(newQueryContext("limit=1000&offset=40"), 20, 100)
	assert.Equal(t, 100, w.Limit)
	assert.Equal(t, 40, w.Offset)

	w = ParseWindow(newQueryContext("offset=-1"), 20, 100)
	assert.Equal(t, 20, w.Limit)
	assert.Equal(t, 0, w.Offset)
}

func TestParseQueryDays(t *testing.T) {
	assert.Equal(t, 30, ParseQueryDays(newQueryContext(""), 30, 365))
	assert.Equal(t, 365, ParseQueryDays(newQueryContext("days=9999"), 30, 365))
	assert.Equal(t, 7, ParseQueryDays(newQueryContext("days=7"), 30, 365))
}
