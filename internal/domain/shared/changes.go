package shared

import (
	"sort"
	"strings"
)

// Changes is the column set of a partial update. Only columns present in
// the map are written; an empty set is rejected before reaching storage.
type Changes map[string]any

// Set records a column value.
func (c Changes) Set(column string, value any) Changes {
	c[column] = value
	return c
}

// SetIfPresent records *value under column unless value is nil.
// A nil pointer means the caller did not supply the field, so the stored
// value is left untouched.
func SetIfPresent[V any](c Changes, column string, value *V) {
	if value == nil {
		return
	}
	c[column] = *value
}

// IsEmpty reports whether no column would be written.
func (c Changes) IsEmpty() bool {
	return len(c) == 0
}

// Columns returns the changed column names in sorted order.
func (c Changes) Columns() []string {
	cols := make([]string, 0, len(c))
	for col := range c {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// SetRequiredString records a trimmed value for a column that may not be
// blank once supplied. field is the public name used in the error.
func SetRequiredString(c Changes, field, column string, value *string) error {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return NewValidationError(field + " is required")
	}
	c[column] = trimmed
	return nil
}
