package validate

import (
	"fmt"
	"strings"

	"github.com/veridical/veridical/internal/model"
)

// MetricCountMismatchError is raised when the number of claim values located
// in the source text disagrees with the number of claims. The per-claim
// mapping would be untrustworthy, so the whole request fails rather than
// silently truncating or padding.
type MetricCountMismatchError struct {
	Country string
	Claims  int
	Located int
	Group   model.ClaimGroup
}

func (e *MetricCountMismatchError) Error() string {
	return fmt.Sprintf("metric count mismatch for %s: %d claims but %d values located in text",
		e.Country, e.Claims, e.Located)
}

// CountryExtractionError is raised when a claim group carries no country and
// the source text does not name exactly one known country.
type CountryExtractionError struct {
	Candidates []string
	Group      model.ClaimGroup
}

func (e *CountryExtractionError) Error() string {
	if len(e.Candidates) == 0 {
		return "could not extract country: no known country named in text"
	}
	return fmt.Sprintf("could not extract country: ambiguous between %s",
		strings.Join(e.Candidates, ", "))
}
