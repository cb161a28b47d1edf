package validate

import (
	"sort"

	"github.com/veridical/veridical/internal/model"
	"github.com/veridical/veridical/internal/query"
	"github.com/veridical/veridical/internal/refstore"
)

// Orchestrator runs validation for extracted claim groups against a
// reference store. The store is injected at construction and never mutated.
type Orchestrator struct {
	store   *refstore.Store
	matcher *query.Matcher
}

// NewOrchestrator creates an orchestrator over the given store
func NewOrchestrator(store *refstore.Store) *Orchestrator {
	return &Orchestrator{
		store:   store,
		matcher: query.NewMatcher(store),
	}
}

// Validate checks every claim group against the reference store and returns
// one result record per claim, grouped by country.
//
// Unknown countries and empty claim groups terminate their group with a
// single COUNTRY_NOT_SUPPORTED or NO_METRICS_FOUND record; no per-claim
// processing occurs. Per-claim classification failures are recorded as
// outcomes and never abort the group. Position correlation runs once per
// group against the full value set; a count disagreement or an unresolvable
// country aborts the request with a typed error carrying the offending
// group.
func (o *Orchestrator) Validate(sourceText string, groups []model.ClaimGroup) ([]model.CountryResult, error) {
	results := make([]model.CountryResult, 0, len(groups))

	for _, group := range groups {
		country := group.Country
		if country == "" {
			inferred, err := o.inferCountry(sourceText, group)
			if err != nil {
				return nil, err
			}
			country = inferred
		}

		if !o.store.HasCountry(country) {
			results = append(results, model.CountryResult{
				Country: country,
				Result: []model.ValidationResult{{
					Outcome: model.OutcomeCountryNotSupported,
					Message: model.OutcomeCountryNotSupported.Message(),
				}},
			})
			continue
		}

		if len(group.CountryMetrics) == 0 {
			results = append(results, model.CountryResult{
				Country: country,
				Result: []model.ValidationResult{{
					Outcome: model.OutcomeNoMetricsFound,
					Message: model.OutcomeNoMetricsFound.Message(),
				}},
			})
			continue
		}

		verdicts := make([]model.ValidationResult, 0, len(group.CountryMetrics))
		for i := range group.CountryMetrics {
			claim := group.CountryMetrics[i]
			rows := o.matcher.Match(country, claim)
			outcome, row, key := Classify(rows, claim)

			verdict := model.ValidationResult{
				Claim:   &group.CountryMetrics[i],
				Outcome: outcome,
				IsValid: outcome.Valid(),
				Message: outcome.Message(),
			}
			if key.Resolved() {
				verdict.TimeKey = key.Value
			}
			if row != nil {
				verdict.Reference = row.View(key.Value)
			}
			verdicts = append(verdicts, verdict)
		}

		positions := Locate(sourceText, group.Values())
		if len(positions) != len(verdicts) {
			return nil, &MetricCountMismatchError{
				Country: country,
				Claims:  len(verdicts),
				Located: len(positions),
				Group:   group,
			}
		}
		for i := range verdicts {
			verdicts[i].Position = &model.TextPosition{
				Index:  positions[i].Index,
				Offset: positions[i].Offset,
				Length: positions[i].Length,
			}
		}

		results = append(results, model.CountryResult{Country: country, Result: verdicts})
	}

	return results, nil
}

// inferCountry scans the source text for known country names when the
// extractor produced a group without one. The heuristic is deliberately
// narrow: exactly one distinct known country among the whitespace-split,
// punctuation-stripped tokens is accepted; zero or several is a hard error,
// never a guess among ties.
func (o *Orchestrator) inferCountry(sourceText string, group model.ClaimGroup) (string, error) {
	found := make(map[string]struct{})
	for _, tok := range tokenize(sourceText) {
		name := stripTrailingPunct(tok.text)
		if o.store.HasCountry(name) {
			found[name] = struct{}{}
		}
	}

	if len(found) == 1 {
		for name := range found {
			return name, nil
		}
	}

	candidates := make([]string, 0, len(found))
	for name := range found {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)
	return "", &CountryExtractionError{Candidates: candidates, Group: group}
}
