// Package listing implements the customer list view-model: the query
// state behind the customers screen, its fetches and the client-side sort
// of the loaded page.
package listing

import (
	"strings"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
)

// PageSizes are the page sizes offered by the customers screen.
var PageSizes = []int{10, 25, 50, 100}

const DefaultPageSize = 10

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query is the search, filter, sort and pagination state of one customers
// screen.
type Query struct {
	Search       string
	DocumentType models.DocumentType
	Gender       models.Gender
	Status       models.RecordStatus

	Page     int
	PageSize int

	SortColumn    Column
	SortDirection Direction
}

func newQuery(pageSize int) Query {
	if !ValidPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	return Query{Page: 1, PageSize: pageSize, SortDirection: Asc}
}

// Filter converts the query to listing parameters. Empty filters are left
// out of the request.
func (q Query) Filter() models.CustomerFilter {
	return models.CustomerFilter{
		Skip:         (q.Page - 1) * q.PageSize,
		Limit:        q.PageSize,
		DocumentType: q.DocumentType,
		Gender:       q.Gender,
		Status:       q.Status,
		Search:       strings.TrimSpace(q.Search),
	}
}
