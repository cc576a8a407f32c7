package repositories

import (
	"gorm.io/gorm"
)

// BaseRepo carries the shared GORM handle every repository embeds.
type BaseRepo struct {
	DB *gorm.DB
}

// QueryOptions are the common preload/sort/pagination knobs a query can
// take, applied via ApplyQueryOptions.
type QueryOptions struct {
	Limit   int
	Offset  int
	Sort    string
	Order   string // ASC or DESC
	Preload []string
}

// ApplyQueryOptions applies common query options to GORM DB
func ApplyQueryOptions(db *gorm.DB, opts *QueryOptions) *gorm.DB {
	if opts == nil {
		return db
	}

	// Apply preloads
	for _, preload := range opts.Preload {
		db = db.Preload(preload)
	}

	// Apply sorting
	if opts.Sort != "" {
		order := "ASC"
		if opts.Order == "DESC" {
			order = "DESC"
		}
		db = db.Order(opts.Sort + " " + order)
	}

	// Apply pagination
	if opts.Limit > 0 {
		db = db.Limit(opts.Limit)
	}

	if opts.Offset > 0 {
		db = db.Offset(opts.Offset)
	}

	return db
}

// PaginationResult represents paginated results
type PaginationResult struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// CalculatePagination calculates pagination metadata
func CalculatePagination(total int64, page, perPage int) *PaginationResult {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return &PaginationResult{
		Total:       total,
		CurrentPage: page,
		PerPage:     perPage,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
