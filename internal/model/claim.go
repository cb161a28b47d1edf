package model

// Claim represents a single metric assertion extracted from the source text
type Claim struct {
	MetricName   string `json:"metric_name"`             // Indicator name (e.g., "Retail Trade Growth")
	MetricValue  string `json:"metric_value"`            // Value as text, compared without numeric coercion
	MetricMonth  string `json:"metric_month,omitempty"`  // Month the metric was measured in (optional)
	MetricYear   string `json:"metric_year,omitempty"`   // Year the metric was measured (optional)
	MetricSource string `json:"metric_source,omitempty"` // Reporting source (e.g., "OECD", optional)
}

// ClaimGroup is the set of claims the extractor attributes to one country
type ClaimGroup struct {
	Country        string  `json:"country,omitempty"` // May be empty; resolved by the country heuristic
	CountryMetrics []Claim `json:"country_metrics"`
}

// HasCountry reports whether the extractor identified a country for the group
func (g ClaimGroup) HasCountry() bool {
	return g.Country != ""
}

// Values returns the claim values of the group in claim order
func (g ClaimGroup) Values() []string {
	values := make([]string, 0, len(g.CountryMetrics))
	for _, c := range g.CountryMetrics {
		values = append(values, c.MetricValue)
	}
	return values
}
