// Package pagination parses list-endpoint paging parameters and wraps list
// payloads in the envelope the console's tables consume.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds validated pagination parameters.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse reads page and limit from the query string, falling back to defaults
// and clamping limit to MaxLimit. Unparseable values behave like absent ones.
func Parse(c *gin.Context) Params {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Page is the list response envelope: one page of items plus the total row
// count and the paging parameters that produced it.
type Page struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// NewPage wraps one page of items for the response body.
func NewPage(items interface{}, total int64, p Params) Page {
	return Page{
		Items: items,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}
}
