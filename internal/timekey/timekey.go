// Package timekey derives the time-series column key for a (month, year)
// pair. The three-letter/two-digit convention ("nov_03") and the bare-year
// form ("2003") are a compatibility contract with the reference table's
// column naming and must be reproduced exactly.
package timekey

import "strings"

// Reason explains why a key could not be derived
type Reason string

const (
	// ReasonResolved means the key is usable
	ReasonResolved Reason = ""
	// ReasonMonthMissing means the month was absent or unreadable
	ReasonMonthMissing Reason = "MONTH_MISSING"
	// ReasonYearMissing means the year was absent or unreadable
	ReasonYearMissing Reason = "YEAR_MISSING"
)

// Key is a derived time-series column identifier, or the unresolved sentinel
// with the reason derivation failed
type Key struct {
	Value  string
	Reason Reason
}

// Resolved reports whether the key identifies a concrete column
func (k Key) Resolved() bool {
	return k.Reason == ReasonResolved
}

// Month strings the extractor emits when the month is unknown
var monthSentinels = map[string]bool{
	"none": true,
	"na":   true,
	"n/a":  true,
}

// Derive maps a (month, year) pair to a time-series column key.
//
// A month that is present but unreadable (a sentinel string, or shorter than
// three characters) marks the claim as monthly-with-unknown-month and fails
// with MonthMissing regardless of the year. An entirely absent month makes
// the claim yearly: the raw year string is the key. A missing or unreadable
// year fails with YearMissing. Derivation is pure; nothing is ever
// substituted for an unresolvable input.
func Derive(month, year string) Key {
	month = strings.TrimSpace(month)
	year = strings.TrimSpace(year)

	yearOK := year != "" && !strings.Contains(year, "Unk")

	if month == "" {
		if !yearOK {
			return Key{Reason: ReasonYearMissing}
		}
		return Key{Value: year}
	}

	if monthSentinels[strings.ToLower(month)] || len(month) < 3 {
		return Key{Reason: ReasonMonthMissing}
	}
	if !yearOK {
		return Key{Reason: ReasonYearMissing}
	}

	suffix := year
	if len(suffix) > 2 {
		suffix = suffix[len(suffix)-2:]
	}
	return Key{Value: strings.ToLower(month[:3]) + "_" + suffix}
}
