// ABOUTME: Page number pagination for repository queries
// ABOUTME: Defines page parameters and the generic paginated response shape

package pagination

import (
	"fmt"

	coreerrors "trends-shared/core/errors"
)

const (
	// DefaultPage is the first page
	DefaultPage = 1

	// DefaultSize is the default number of results per page
	DefaultSize = 10

	// MaxSize caps how many results a single page may return
	MaxSize = 100
)

// PageParams are the parameters for page number pagination.
type PageParams struct {
	// Page is the 1-based page number
	Page int `json:"page"`

	// Size is the number of results per page
	Size int `json:"size"`
}

// DefaultPageParams returns the first page with the default size.
func DefaultPageParams() PageParams {
	return PageParams{Page: DefaultPage, Size: DefaultSize}
}

// Validate checks the pagination parameters.
func (p PageParams) Validate() error {
	if p.Page < 1 {
		return &coreerrors.ValidationError{
			Field:   "page",
			Message: "page must be at least 1",
		}
	}

	if p.Size < 1 || p.Size > MaxSize {
		return &coreerrors.ValidationError{
			Field:   "size",
			Message: fmt.Sprintf("size must be between 1 and %d", MaxSize),
		}
	}

	return nil
}

// Offset returns the number of rows to skip for this page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// Limit returns the maximum number of rows for this page.
func (p PageParams) Limit() int {
	return p.Size
}

// Page is the response shape for page number pagination.
type Page[T any] struct {
	// TotalCount is the total number of results across all pages
	TotalCount int64 `json:"total_count"`

	// NextPage is the next page number, or nil on the last page
	NextPage *int `json:"next_page"`

	// PreviousPage is the previous page number, or nil on the first page
	PreviousPage *int `json:"previous_page"`

	// Results holds the results for this page
	Results []T `json:"results"`
}

// NewPage assembles a paginated response from one page of results and the
// total match count.
func NewPage[T any](results []T, totalCount int64, params PageParams) Page[T] {
	page := Page[T]{
		TotalCount: totalCount,
		Results:    results,
	}

	if len(results) == 0 {
		page.Results = []T{}
		return page
	}

	if params.Page > 1 {
		previous := params.Page - 1
		page.PreviousPage = &previous
	}

	// A non-positive size means no further pages can be computed
	if params.Size > 0 {
		totalPages := (totalCount + int64(params.Size) - 1) / int64(params.Size)
		if int64(params.Page) < totalPages {
			next := params.Page + 1
			page.NextPage = &next
		}
	}

	return page
}
