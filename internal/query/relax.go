// Package query builds reference-table queries for a claim and relaxes them
// progressively when the most specific form finds nothing.
package query

import (
	"strings"
	"unicode"

	"github.com/veridical/veridical/internal/model"
	"github.com/veridical/veridical/internal/refstore"
)

// Matcher finds candidate reference rows for claims
type Matcher struct {
	store *refstore.Store
}

// NewMatcher creates a matcher over the given store
func NewMatcher(store *refstore.Store) *Matcher {
	return &Matcher{store: store}
}

// Match returns candidate rows for the claim, possibly empty.
//
// The predicate list is ordered most-reliable first: country equality, then
// indicator containment, then source containment (only when the claim names
// a source). When the full list finds nothing the trailing predicate is
// dropped and the query retried: claims frequently omit or mis-state the
// source, while country+indicator is nearly always reliable. The country
// predicate is never dropped: an empty country-only result ends the search,
// never an unfiltered table scan.
func (m *Matcher) Match(country string, claim model.Claim) []model.ReferenceRow {
	preds := m.Predicates(country, claim)

	for len(preds) > 0 {
		rows := m.store.Filter(preds)
		if len(rows) > 0 {
			return rows
		}
		preds = preds[:len(preds)-1]
	}
	return nil
}

// Predicates builds the full, unrelaxed predicate list for a claim.
// Indicator names are title-cased to match the table's casing convention.
func (m *Matcher) Predicates(country string, claim model.Claim) []refstore.Predicate {
	preds := []refstore.Predicate{
		refstore.Eq(model.ColCountry, country),
		refstore.Contains(model.ColIndicator, titleCase(claim.MetricName)),
	}
	if claim.MetricSource != "" {
		preds = append(preds, refstore.Contains(model.ColSource, claim.MetricSource))
	}
	return preds
}

// titleCase upper-cases the first letter of every space-separated word,
// mirroring how indicator names are cased in the reference table
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
