// Package pagination normalizes list query parameters and assembles result
// pages. It never rejects input: unparsable or out-of-range values fall back
// to defaults.
package pagination

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Order is a sort direction.
type Order string

const (
	Asc  Order = "ASC"
	Desc Order = "DESC"
)

// Page is a page of results plus the pagination block.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Block is the pagination summary embedded next to a nested collection.
type Block struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Block returns the summary of p without its items.
func (p Page[T]) Block() Block {
	return Block{Total: p.Total, Page: p.Page, Limit: p.Limit, TotalPages: p.TotalPages}
}

// Request is a normalized page request.
type Request struct {
	Page  int
	Limit int
}

// NewRequest clamps page and limit to their valid ranges.
func NewRequest(page, limit int) Request {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{Page: page, Limit: limit}
}

// ParseRequest builds a Request from raw query strings.
func ParseRequest(page, limit string) Request {
	return NewRequest(atoi(page), atoi(limit))
}

// Offset is the number of rows skipped before this page.
func (r Request) Offset() int {
	return (r.Page - 1) * r.Limit
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// NewPage assembles a page. A nil items slice is replaced with an empty one so
// it serializes as [].
func NewPage[T any](items []T, total int64, req Request) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: TotalPages(total, req.Limit),
	}
}

// Sort is a resolved, whitelisted sort column and direction.
type Sort struct {
	Field string
	Order Order
}

// Clause renders the ORDER BY expression. Field is always a whitelisted
// column name, never raw user input.
func (s Sort) Clause() string {
	return s.Field + " " + string(s.Order)
}

// SortFields whitelists sortable columns for one collection.
type SortFields struct {
	allowed      map[string]string
	defaultField string
}

// NewSortFields maps API names to column names. The default must be one of
// the API names.
func NewSortFields(defaultField string, columns map[string]string) SortFields {
	return SortFields{allowed: columns, defaultField: defaultField}
}

// Resolve maps a requested field and order to a Sort. Unknown fields fall
// back to the default; any order other than "desc" is ascending.
func (f SortFields) Resolve(field, order string) Sort {
	column, ok := f.allowed[strings.TrimSpace(field)]
	if !ok {
		column = f.allowed[f.defaultField]
	}
	return Sort{Field: column, Order: ParseOrder(order)}
}

// ParseOrder returns Desc for "desc" in any case and Asc otherwise.
func ParseOrder(order string) Order {
	if strings.EqualFold(strings.TrimSpace(order), "desc") {
		return Desc
	}
	return Asc
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
