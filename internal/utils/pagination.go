package utils

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination is a validated page/limit pair
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads page and limit query values, falling back to defaults on
// missing, non-numeric or non-positive input. Limit is capped at MaxLimit and page is
// capped so the row offset stays within a postgres int4.
func ParsePagination(pageStr, limitStr string) Pagination {
	p := Pagination{Page: DefaultPage, Limit: DefaultLimit}
	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
		p.Limit = v
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if maxPage := math.MaxInt32/p.Limit + 1; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

// Offset is the zero-based row offset of the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// PageResult is the envelope returned by every list endpoint
type PageResult[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPageResult wraps one page of items. A nil slice is rendered as [].
func NewPageResult[T any](items []T, total int, p Pagination) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}
}
