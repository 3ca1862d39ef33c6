package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/studentdash/internal/student"
)

// Order is a sort direction.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// ErrUnknownColumn is returned for sort keys outside the table schema.
var ErrUnknownColumn = errors.New("unknown column")

// ParseOrder accepts asc|ascending|desc|descending; empty means ascending.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (use asc|desc)", s)
	}
}

// ParseKey validates a sort key against the table columns. Empty is allowed
// and means unsorted.
func ParseKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || student.IsColumn(s) {
		return s, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownColumn, s)
}

// State is the table's search and sort selection.
type State struct {
	Search    string `json:"search"`
	SortKey   string `json:"sort_key,omitempty"`
	SortOrder Order  `json:"sort_order,omitempty"`
}

// Toggle selects key for sorting. Selecting the active key flips the
// direction; a new key starts ascending.
func (s State) Toggle(key string) State {
	if s.SortKey == key {
		if s.SortOrder == Descending {
			s.SortOrder = Ascending
		} else {
			s.SortOrder = Descending
		}
		return s
	}
	s.SortKey = key
	s.SortOrder = Ascending
	return s
}

// View filters records by the state's search text and sorts the result.
func View(records []student.Record, s State) []student.Record {
	return Sort(Filter(records, s.Search), s.SortKey, s.SortOrder)
}

// Filter keeps records whose name or class contains search, ignoring case.
// Absent fields read as empty. The input slice is not modified.
func Filter(records []student.Record, search string) []student.Record {
	q := strings.ToLower(search)
	out := make([]student.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Get(student.FieldName)), q) ||
			strings.Contains(strings.ToLower(r.Get(student.FieldClass)), q) {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns records stably ordered by key. An empty key keeps load order.
func Sort(records []student.Record, key string, order Order) []student.Record {
	out := make([]student.Record, len(records))
	copy(out, records)
	if key == "" {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := Compare(out[i], out[j], key)
		if order == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Compare orders two records by key: numerically when both values parse as
// numbers, as text otherwise.
func Compare(a, b student.Record, key string) int {
	va, vb := a.Get(key), b.Get(key)
	na, okA := student.LookupNumber(va)
	nb, okB := student.LookupNumber(vb)
	if okA && okB {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(va, vb)
}
