package validate

import (
	"errors"
	"testing"

	"github.com/veridical/veridical/internal/model"
	"github.com/veridical/veridical/internal/refstore"
)

func testStore() *refstore.Store {
	rows := []model.ReferenceRow{
		{
			Country:   "Norway",
			Indicator: "Retail Trade Growth",
			Source:    "Statistics Norway",
			Unit:      "percent",
			Series:    map[string]string{"nov_03": "5.6", "2003": "1.2"},
		},
		{
			Country:   "Sweden",
			Indicator: "Retail Trade Growth",
			Source:    "Statistics Sweden",
			Series:    map[string]string{"nov_03": "2.1"},
		},
	}
	columns := []string{
		model.ColCountry, model.ColIndicator, model.ColSource, model.ColUnit,
		"nov_03", "2003",
	}
	return refstore.New(rows, columns)
}

func TestValidate_ValidClaim(t *testing.T) {
	o := NewOrchestrator(testStore())

	text := "Norway Retail Trade Growth was 5.6 in November 2003"
	groups := []model.ClaimGroup{{
		Country: "Norway",
		CountryMetrics: []model.Claim{{
			MetricName:  "Retail Trade Growth",
			MetricValue: "5.6",
			MetricMonth: "November",
			MetricYear:  "2003",
		}},
	}}

	results, err := o.Validate(text, groups)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 1 || len(results[0].Result) != 1 {
		t.Fatalf("Expected 1 result for 1 claim, got %+v", results)
	}

	verdict := results[0].Result[0]
	if verdict.Outcome != model.OutcomeValid {
		t.Errorf("Expected VALID, got %s", verdict.Outcome)
	}
	if !verdict.IsValid {
		t.Error("Expected IsValid true")
	}
	if verdict.TimeKey != "nov_03" {
		t.Errorf("Expected time key nov_03, got %q", verdict.TimeKey)
	}
	if verdict.Reference == nil {
		t.Fatal("Expected a reference row view")
	}
	if verdict.Reference.Value == nil || *verdict.Reference.Value != "5.6" {
		t.Error("Expected the reference view to carry the resolved value")
	}
	if verdict.Position == nil {
		t.Fatal("Expected a text position")
	}
	if verdict.Position.Index != 5 {
		t.Errorf("Expected value at token index 5, got %d", verdict.Position.Index)
	}
}

func TestValidate_WrongValue(t *testing.T) {
	o := NewOrchestrator(testStore())

	text := "Norway Retail Trade Growth was 5.7 in November 2003"
	groups := []model.ClaimGroup{{
		Country: "Norway",
		CountryMetrics: []model.Claim{{
			MetricName:  "Retail Trade Growth",
			MetricValue: "5.7",
			MetricMonth: "November",
			MetricYear:  "2003",
		}},
	}}

	results, err := o.Validate(text, groups)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	verdict := results[0].Result[0]
	if verdict.Outcome != model.OutcomeInvalidMetric {
		t.Errorf("Expected INVALID_METRIC, got %s", verdict.Outcome)
	}
	if verdict.Message != "The text contains an error" {
		t.Errorf("Unexpected message %q", verdict.Message)
	}
}

func TestValidate_CountryNotSupported(t *testing.T) {
	o := NewOrchestrator(testStore())

	groups := []model.ClaimGroup{{
		Country: "Atlantis",
		CountryMetrics: []model.Claim{{
			MetricName:  "GDP",
			MetricValue: "5.6",
		}},
	}}

	results, err := o.Validate("Atlantis GDP was 5.6", groups)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 1 || len(results[0].Result) != 1 {
		t.Fatalf("Expected a single group record, got %+v", results)
	}
	if results[0].Result[0].Outcome != model.OutcomeCountryNotSupported {
		t.Errorf("Expected COUNTRY_NOT_SUPPORTED, got %s", results[0].Result[0].Outcome)
	}
}

func TestValidate_NoMetricsFound(t *testing.T) {
	o := NewOrchestrator(testStore())

	groups := []model.ClaimGroup{{Country: "Norway"}}

	results, err := o.Validate("Norway had a quiet month", groups)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if results[0].Result[0].Outcome != model.OutcomeNoMetricsFound {
		t.Errorf("Expected NO_METRICS_FOUND, got %s", results[0].Result[0].Outcome)
	}
}

func TestValidate_PerClaimFailuresDoNotAbortGroup(t *testing.T) {
	o := NewOrchestrator(testStore())

	text := "Norway Retail Trade Growth was 5.6 and then 9.9 in November 2003"
	groups := []model.ClaimGroup{{
		Country: "Norway",
		CountryMetrics: []model.Claim{
			{MetricName: "Retail Trade Growth", MetricValue: "5.6", MetricMonth: "November", MetricYear: "2003"},
			{MetricName: "Retail Trade Growth", MetricValue: "9.9", MetricMonth: "November", MetricYear: "2003"},
		},
	}}

	results, err := o.Validate(text, groups)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	verdicts := results[0].Result
	if len(verdicts) != 2 {
		t.Fatalf("Expected 2 verdicts, got %d", len(verdicts))
	}
	if verdicts[0].Outcome != model.OutcomeValid {
		t.Errorf("Expected first claim VALID, got %s", verdicts[0].Outcome)
	}
	if verdicts[1].Outcome != model.OutcomeInvalidMetric {
		t.Errorf("Expected second claim INVALID_METRIC, got %s", verdicts[1].Outcome)
	}
}

func TestValidate_MetricCountMismatch(t *testing.T) {
	o := NewOrchestrator(testStore())

	// The claimed value never appears literally in the text, so correlation
	// finds fewer positions than claims.
	groups := []model.ClaimGroup{{
		Country: "Norway",
		CountryMetrics: []model.Claim{{
			MetricName:  "Retail Trade Growth",
			MetricValue: "5.6",
			MetricMonth: "November",
			MetricYear:  "2003",
		}},
	}}

	_, err := o.Validate("Norway retail trade grew strongly in November 2003", groups)
	if err == nil {
		t.Fatal("Expected a metric count mismatch error")
	}
	var mismatch *MetricCountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Expected MetricCountMismatchError, got %T", err)
	}
	if mismatch.Claims != 1 || mismatch.Located != 0 {
		t.Errorf("Expected 1 claim and 0 located, got %d/%d", mismatch.Claims, mismatch.Located)
	}
	if mismatch.Country != "Norway" {
		t.Errorf("Expected group context in the error, got country %q", mismatch.Country)
	}
}

func TestValidate_InfersSingleCountry(t *testing.T) {
	o := NewOrchestrator(testStore())

	text := "Retail trade in Norway grew 5.6 during November 2003"
	groups := []model.ClaimGroup{{
		CountryMetrics: []model.Claim{{
			MetricName:  "Retail Trade Growth",
			MetricValue: "5.6",
			MetricMonth: "November",
			MetricYear:  "2003",
		}},
	}}

	results, err := o.Validate(text, groups)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if results[0].Country != "Norway" {
		t.Errorf("Expected inferred country Norway, got %q", results[0].Country)
	}
	if results[0].Result[0].Outcome != model.OutcomeValid {
		t.Errorf("Expected VALID after inference, got %s", results[0].Result[0].Outcome)
	}
}

func TestValidate_CountryInferenceAmbiguous(t *testing.T) {
	o := NewOrchestrator(testStore())

	text := "Norway and Sweden both reported 5.6 growth"
	groups := []model.ClaimGroup{{
		CountryMetrics: []model.Claim{{MetricValue: "5.6"}},
	}}

	_, err := o.Validate(text, groups)
	var extraction *CountryExtractionError
	if !errors.As(err, &extraction) {
		t.Fatalf("Expected CountryExtractionError, got %v", err)
	}
	if len(extraction.Candidates) != 2 {
		t.Errorf("Expected 2 candidates, got %v", extraction.Candidates)
	}
	if extraction.Candidates[0] != "Norway" || extraction.Candidates[1] != "Sweden" {
		t.Errorf("Expected sorted candidates, got %v", extraction.Candidates)
	}
}

func TestValidate_CountryInferenceNoCandidate(t *testing.T) {
	o := NewOrchestrator(testStore())

	groups := []model.ClaimGroup{{
		CountryMetrics: []model.Claim{{MetricValue: "5.6"}},
	}}

	_, err := o.Validate("Somewhere growth hit 5.6", groups)
	var extraction *CountryExtractionError
	if !errors.As(err, &extraction) {
		t.Fatalf("Expected CountryExtractionError, got %v", err)
	}
	if len(extraction.Candidates) != 0 {
		t.Errorf("Expected no candidates, got %v", extraction.Candidates)
	}
}

func TestValidate_MultipleGroups(t *testing.T) {
	o := NewOrchestrator(testStore())

	text := "Norway reported 5.6 while Sweden reported 2.1 in November 2003"
	groups := []model.ClaimGroup{
		{
			Country: "Norway",
			CountryMetrics: []model.Claim{{
				MetricName: "Retail Trade Growth", MetricValue: "5.6",
				MetricMonth: "November", MetricYear: "2003",
			}},
		},
		{
			Country: "Sweden",
			CountryMetrics: []model.Claim{{
				MetricName: "Retail Trade Growth", MetricValue: "2.1",
				MetricMonth: "November", MetricYear: "2003",
			}},
		},
	}

	results, err := o.Validate(text, groups)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 country groups, got %d", len(results))
	}
	for _, cr := range results {
		if cr.Result[0].Outcome != model.OutcomeValid {
			t.Errorf("Expected VALID for %s, got %s", cr.Country, cr.Result[0].Outcome)
		}
	}
}
