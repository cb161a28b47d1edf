// Package refstore holds the authoritative read-only table of indicator
// observations. The store is loaded once at startup and treated as immutable
// for the process lifetime, so reads need no locking.
package refstore

import (
	"sort"
	"strings"

	"github.com/veridical/veridical/internal/model"
)

// Op is a predicate operator
type Op int

const (
	// OpEq matches on exact, case-sensitive equality
	OpEq Op = iota
	// OpContains matches on case-insensitive substring containment
	OpContains
)

// Predicate is one (column, operator, value) filter condition
type Predicate struct {
	Column string
	Op     Op
	Value  string
}

// Eq builds an equality predicate
func Eq(column, value string) Predicate {
	return Predicate{Column: column, Op: OpEq, Value: value}
}

// Contains builds a containment predicate
func Contains(column, value string) Predicate {
	return Predicate{Column: column, Op: OpContains, Value: value}
}

// Store is the in-memory reference table
type Store struct {
	rows      []model.ReferenceRow
	columns   map[string]struct{}
	countries map[string]struct{}
}

// New builds a store from rows and the full column set of the backing table
func New(rows []model.ReferenceRow, columns []string) *Store {
	s := &Store{
		rows:      rows,
		columns:   make(map[string]struct{}, len(columns)),
		countries: make(map[string]struct{}),
	}
	for _, c := range columns {
		s.columns[c] = struct{}{}
	}
	for _, r := range rows {
		if r.Country != "" {
			s.countries[r.Country] = struct{}{}
		}
	}
	return s
}

// Filter returns all rows satisfying every predicate, in insertion order.
// An empty result is not an error.
func (s *Store) Filter(preds []Predicate) []model.ReferenceRow {
	var out []model.ReferenceRow
	for _, row := range s.rows {
		if rowMatches(row, preds) {
			out = append(out, row)
		}
	}
	return out
}

func rowMatches(row model.ReferenceRow, preds []Predicate) bool {
	for _, p := range preds {
		cell, ok := row.Field(p.Column)
		if !ok {
			cell, ok = row.Value(p.Column)
		}
		if !ok {
			return false
		}
		switch p.Op {
		case OpEq:
			if cell != p.Value {
				return false
			}
		case OpContains:
			if !strings.Contains(strings.ToLower(cell), strings.ToLower(p.Value)) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// HasCountry reports whether the country appears in the table
func (s *Store) HasCountry(name string) bool {
	_, ok := s.countries[name]
	return ok
}

// Countries returns the known country names, sorted
func (s *Store) Countries() []string {
	names := make([]string, 0, len(s.countries))
	for name := range s.countries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasColumn reports whether the table schema carries the column
func (s *Store) HasColumn(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// Len returns the number of rows
func (s *Store) Len() int {
	return len(s.rows)
}
