package persistence

import "strings"

// SortWhitelist holds the columns a list query may order by. Anything else
// requested by a client is replaced by the fallback column.
type SortWhitelist map[string]bool

// envelopeColumns exist on every table.
var envelopeColumns = []string{"id", "created_at", "updated_at"}

// NewSortWhitelist allows the envelope columns plus extra.
func NewSortWhitelist(extra ...string) SortWhitelist {
	w := make(SortWhitelist, len(envelopeColumns)+len(extra))
	for _, col := range envelopeColumns {
		w[col] = true
	}
	for _, col := range extra {
		w[col] = true
	}
	return w
}

// Column returns requested when it is whitelisted, otherwise fallback.
func (w SortWhitelist) Column(requested, fallback string) string {
	if col := strings.TrimSpace(requested); w[col] {
		return col
	}
	return fallback
}

// OrderBy renders the ORDER BY terms for a list query. Rows with equal sort
// keys are tie-broken by id so pages stay stable.
func (w SortWhitelist) OrderBy(requested, direction string) []string {
	col := w.Column(requested, "created_at")
	terms := []string{col + " " + sortDirection(direction)}
	if col != "id" {
		terms = append(terms, "id ASC")
	}
	return terms
}

// sortDirection accepts asc in any case; everything else is DESC.
func sortDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}
