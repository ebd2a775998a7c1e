package paging

import (
	"errors"
)

// ErrPageOutOfRange is returned for page numbers below 1. Pages beyond the
// last one are not an error; see Page.
var ErrPageOutOfRange = errors.New("page number out of range")

// Info describes the slice position within the full set.
type Info struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total"`
}

// Page returns the 1-indexed page slice [(page-1)*perPage, page*perPage).
//
// page < 1 or perPage < 1 fails with ErrPageOutOfRange. A page past the end
// clamps to an empty slice and succeeds.
func Page[T any](items []T, page, perPage int) ([]T, Info, error) {
	if page < 1 || perPage < 1 {
		return nil, Info{}, ErrPageOutOfRange
	}

	total := len(items)
	totalPages := (total + perPage - 1) / perPage

	info := Info{
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalCount: total,
	}

	start := (page - 1) * perPage
	if start >= total {
		return []T{}, info, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return items[start:end], info, nil
}
