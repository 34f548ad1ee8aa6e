package utils

import (
	"github.com/yukikurage/taskbot-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// NewPaginationParams clamps page and pageSize into their allowed ranges and computes the offset.
// Handlers reject out-of-range values before this point; the clamp protects internal callers.
func NewPaginationParams(page, pageSize int) PaginationParams {
	if page < constants.MinPage {
		page = constants.MinPage
	}
	if pageSize < constants.MinPageSize {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}
