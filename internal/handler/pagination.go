package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageParams bounds list queries. Defaults and the cap come from configuration.
type PageParams struct {
	Page     int
	PageSize int
}

// PageLimits carries the configured pagination bounds shared by all list
// handlers.
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

// ParsePageParams reads page/page_size query parameters. Out-of-range or
// unparsable values fall back to sane bounds rather than erroring, matching
// the lenient query handling of the rest of the API.
func ParsePageParams(c *gin.Context, limits PageLimits) PageParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(limits.DefaultSize)))
	if err != nil || pageSize < 1 {
		pageSize = limits.DefaultSize
	}
	if pageSize > limits.MaxSize {
		pageSize = limits.MaxSize
	}

	return PageParams{Page: page, PageSize: pageSize}
}
