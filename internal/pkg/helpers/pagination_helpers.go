package helpers

import (
	"math"
	"strconv"

	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
)

// AllowedPageLimits is the closed set of accepted page sizes
var AllowedPageLimits = []int{5, 10, 30}

// ParseListParams validates the raw page/limit query parameters. limit must
// be one of the allowed page sizes and page a positive integer; anything
// else is rejected rather than defaulted.
func ParseListParams(pageStr, limitStr string) (page, limit int, err error) {
	limit, convErr := strconv.Atoi(limitStr)
	if convErr != nil || !limitAllowed(limit) {
		return 0, 0, apperrors.ErrInvalidPageLimit
	}

	page, convErr = strconv.Atoi(pageStr)
	if convErr != nil || page < 1 {
		return 0, 0, apperrors.ErrInvalidPage
	}

	return page, limit, nil
}

func limitAllowed(limit int) bool {
	for _, allowed := range AllowedPageLimits {
		if limit == allowed {
			return true
		}
	}
	return false
}

// CheckPageBounds decides whether the requested page can be served for a
// collection of totalItems entries. An empty collection on page 1 is
// reported as ErrNothingFound, distinct from a page past the end.
func CheckPageBounds(totalItems int64, page, limit int) error {
	totalPages := TotalPages(totalItems, limit)
	if page > totalPages && totalPages > 0 {
		return apperrors.ErrPageNotFound
	}
	if totalItems == 0 {
		if page > 1 {
			return apperrors.ErrPageNotFound
		}
		return apperrors.ErrNothingFound
	}
	return nil
}

// TotalPages computes ceil(totalItems / limit)
func TotalPages(totalItems int64, limit int) int {
	if totalItems <= 0 || limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalItems) / float64(limit)))
}

// Offset converts a 1-based page number to a row offset
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// NewPaginationInfo creates the standard pagination metadata block
func NewPaginationInfo(totalItems int64, page, limit int) dto.PaginationInfo {
	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  TotalPages(totalItems, limit),
		PageSize:    limit,
		TotalItems:  totalItems,
	}
}
