package shared

import (
	"context"
)

// Pagination bounds applied to every list query.
const (
	DefaultLimit = 25
	MaxLimit     = 100
)

// Repository is the base interface for all repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id string, changes Changes) error
	Delete(ctx context.Context, id string) error
}

// Filter represents query filter options.
// Filters holds equality conditions keyed by the public field name; only
// keys present take part in the query. Search, when set, replaces Filters
// for repositories that support free-text matching.
type Filter struct {
	Limit    int
	Offset   int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Limit:    DefaultLimit,
		Offset:   0,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
}

// Where adds an equality condition and returns the filter.
func (f Filter) Where(field string, value any) Filter {
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	f.Filters[field] = value
	return f
}

// Normalize applies pagination defaults and bounds.
func (f Filter) Normalize() (Filter, error) {
	if f.Limit < 0 {
		return f, NewValidationError("limit must be a non-negative integer")
	}
	if f.Offset < 0 {
		return f, NewValidationError("offset must be a non-negative integer")
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	return f, nil
}

// Page is one page of a list query plus the total number of matches.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}
