package pagination

import "math"

// DefaultPerPage is the page size used when the client supplies none.
const DefaultPerPage = 10

// MaxPerPage caps client-supplied page sizes.
const MaxPerPage = 100

// Pagination represents pagination metadata on a response
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams represents input parameters for pagination
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns default pagination values
func DefaultPagination() *PaginationParams {
	return &PaginationParams{
		Page:    1,
		PerPage: DefaultPerPage,
	}
}

// Validate ensures pagination parameters are within valid ranges
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Offset calculates the offset for SQL queries
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Bounds returns the [start, end) slice indexes for this page over n
// items. The page number is clamped to [1, ceil(n/perPage)] (page 1
// when n is 0), so a page that went stale after deletions resolves to
// the last valid page instead of an out-of-range slice.
func (p *PaginationParams) Bounds(n int) (start, end int) {
	p.Validate()

	totalPages := (n + p.PerPage - 1) / p.PerPage
	if totalPages < 1 {
		totalPages = 1
	}
	if p.Page > totalPages {
		p.Page = totalPages
	}

	start = (p.Page - 1) * p.PerPage
	if start > n {
		start = n
	}
	end = start + p.PerPage
	if end > n {
		end = n
	}
	return start, end
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult represents a paginated result with items and pagination info
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: pagination,
	}
}

// Paginate slices one page out of an already-filtered item set and
// builds its metadata. The requested page is clamped the same way
// Bounds clamps it.
func Paginate[T any](items []T, params *PaginationParams) *PaginatedResult[T] {
	start, end := params.Bounds(len(items))
	return NewPaginatedResult(
		items[start:end],
		NewPagination(params.Page, params.PerPage, int64(len(items))),
	)
}
