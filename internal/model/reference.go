package model

// Descriptive column names of the reference table. The casing and naming are
// a compatibility contract with the backing CSV schema.
const (
	ColCountry             = "country"
	ColIndicator           = "indicator"
	ColSource              = "source"
	ColLink                = "link"
	ColCurrencyCode        = "currency_code"
	ColUnit                = "unit"
	ColCategory            = "category"
	ColFrequency           = "frequency"
	ColNote                = "note"
	ColTag                 = "tag"
	ColCountryCode         = "country_code"
	ColIndicatorDefinition = "indicator_definition"
)

// ReferenceRow is one observation in the reference table: fixed descriptive
// fields plus an open set of time-series columns keyed by time key
// ("nov_03" for monthly, "2003" for yearly). An empty series value means the
// observation is null.
type ReferenceRow struct {
	Country             string
	Indicator           string
	Source              string
	Link                string
	CurrencyCode        string
	Unit                string
	Category            string
	Frequency           string
	Note                string
	Tag                 string
	CountryCode         string
	IndicatorDefinition string

	Series map[string]string
}

// Field returns the value of a descriptive column by its canonical name.
// The second return is false for unknown or time-series columns.
func (r ReferenceRow) Field(column string) (string, bool) {
	switch column {
	case ColCountry:
		return r.Country, true
	case ColIndicator:
		return r.Indicator, true
	case ColSource:
		return r.Source, true
	case ColLink:
		return r.Link, true
	case ColCurrencyCode:
		return r.CurrencyCode, true
	case ColUnit:
		return r.Unit, true
	case ColCategory:
		return r.Category, true
	case ColFrequency:
		return r.Frequency, true
	case ColNote:
		return r.Note, true
	case ColTag:
		return r.Tag, true
	case ColCountryCode:
		return r.CountryCode, true
	case ColIndicatorDefinition:
		return r.IndicatorDefinition, true
	}
	return "", false
}

// Value returns the time-series observation at the given key. The second
// return is false when the row carries no such column.
func (r ReferenceRow) Value(key string) (string, bool) {
	v, ok := r.Series[key]
	return v, ok
}

// RowView is the JSON projection of a matched reference row. Null
// observations and absent descriptive fields render as JSON null, matching
// the historical response shape.
type RowView struct {
	Country             *string `json:"country"`
	Indicator           *string `json:"indicator"`
	Source              *string `json:"source"`
	Link                *string `json:"link"`
	CurrencyCode        *string `json:"currency_code"`
	Unit                *string `json:"unit"`
	Category            *string `json:"category"`
	Frequency           *string `json:"frequency"`
	Note                *string `json:"note"`
	Tag                 *string `json:"tag"`
	CountryCode         *string `json:"country_code"`
	IndicatorDefinition *string `json:"indicator_definition"`
	Value               *string `json:"value"`
}

// View projects the row for the response payload, resolving the time-series
// value at the given key. Empty strings become nulls.
func (r ReferenceRow) View(key string) *RowView {
	view := &RowView{
		Country:             nullable(r.Country),
		Indicator:           nullable(r.Indicator),
		Source:              nullable(r.Source),
		Link:                nullable(r.Link),
		CurrencyCode:        nullable(r.CurrencyCode),
		Unit:                nullable(r.Unit),
		Category:            nullable(r.Category),
		Frequency:           nullable(r.Frequency),
		Note:                nullable(r.Note),
		Tag:                 nullable(r.Tag),
		CountryCode:         nullable(r.CountryCode),
		IndicatorDefinition: nullable(r.IndicatorDefinition),
	}
	if v, ok := r.Series[key]; ok {
		view.Value = nullable(v)
	}
	return view
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
