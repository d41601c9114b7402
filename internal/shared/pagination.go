package shared

import "math"

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Paginate slices items down to the requested page. Scoping happens before
// pagination, so the metadata only ever counts rows the caller may see.
func Paginate[T any](items []T, page, perPage int) ([]T, Pagination) {
	pg := NewPagination(page, perPage, len(items))
	start := (pg.Page - 1) * pg.PerPage
	if start >= len(items) {
		return []T{}, pg
	}
	end := start + pg.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pg
}
