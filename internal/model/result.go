package model

import "time"

// Outcome classifies why a claim did or did not validate
type Outcome string

const (
	OutcomeValid               Outcome = "VALID"
	OutcomeInvalidMetric       Outcome = "INVALID_METRIC"
	OutcomeInsufficientData    Outcome = "INSUFFICIENT_DATA"
	OutcomeMonthMissing        Outcome = "MONTH_MISSING"
	OutcomeYearMissing         Outcome = "YEAR_MISSING"
	OutcomeCountryNotSupported Outcome = "COUNTRY_NOT_SUPPORTED"
	OutcomeNoMetricsFound      Outcome = "NO_METRICS_FOUND"
)

// Valid reports whether the outcome represents a successful validation
func (o Outcome) Valid() bool {
	return o == OutcomeValid
}

// Message returns the human-readable text for the outcome. The wording of
// the first four matches the historical response payloads.
func (o Outcome) Message() string {
	switch o {
	case OutcomeValid:
		return "The text is correct."
	case OutcomeInvalidMetric:
		return "The text contains an error"
	case OutcomeInsufficientData:
		return "The text could not be validated. We do not have enough information to do this."
	case OutcomeMonthMissing:
		return "The text could not be validated. Month missing"
	case OutcomeYearMissing:
		return "The text could not be validated. Year missing"
	case OutcomeCountryNotSupported:
		return "The country is not supported."
	case OutcomeNoMetricsFound:
		return "No metrics were found for the country."
	}
	return string(o)
}

// TextPosition locates a validated claim value in the original source text
type TextPosition struct {
	Index  int `json:"index"`  // Zero-based whitespace-token index
	Offset int `json:"offset"` // Byte offset of the token in the source text
	Length int `json:"length"` // Byte length of the matched token
}

// ValidationResult is the verdict for a single claim
type ValidationResult struct {
	Claim     *Claim        `json:"claim,omitempty"`    // The original extracted claim
	Reference *RowView      `json:"reference"`          // Matched (or closest) reference row, null if none
	Outcome   Outcome       `json:"outcome"`            // Exactly one outcome per claim
	IsValid   bool          `json:"is_valid"`           // Convenience flag, Outcome == VALID
	Message   string        `json:"message"`            // Human-readable explanation
	TimeKey   string        `json:"time_key,omitempty"` // Derived time-series column key, if resolved
	Position  *TextPosition `json:"position,omitempty"` // Location of the value in the source text
	Summary   string        `json:"summary,omitempty"`  // Optional LLM-generated report text
}

// CountryResult groups the per-claim verdicts for one country
type CountryResult struct {
	Country string             `json:"country"`
	Result  []ValidationResult `json:"result"`
}

// Report is the complete evaluation output for one source text
type Report struct {
	Source      string          `json:"source,omitempty"` // URL or file the text came from
	EvaluatedAt time.Time       `json:"evaluated_at"`
	Text        string          `json:"text,omitempty"`
	Metrics     []CountryResult `json:"metrics"`
	FromCache   bool            `json:"from_cache,omitempty"` // Extraction served from cache
	LLM         *LLMSummary     `json:"llm,omitempty"`        // Optional summary, never affects verdicts
}

// LLMSummary contains the optional LLM-generated narrative.
// It never affects validation outcomes.
type LLMSummary struct {
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SummaryMD string `json:"summary_md,omitempty"`
}
