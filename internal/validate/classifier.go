// Package validate decides whether extracted metric claims agree with the
// reference table and assembles per-country verdicts.
package validate

import (
	"github.com/veridical/veridical/internal/model"
	"github.com/veridical/veridical/internal/timekey"
)

// Classify compares a claim against its candidate rows and assigns an
// outcome. Returned row is the matched row on VALID, the last examined row
// on INVALID_METRIC, the first candidate for diagnostic context when the
// time key is unresolved, and nil otherwise.
//
// Values are compared as text with exact string equality: "1" and "1.0" are
// not equal. Candidates are scanned in store order and the first match wins;
// no secondary sort is applied.
func Classify(rows []model.ReferenceRow, claim model.Claim) (model.Outcome, *model.ReferenceRow, timekey.Key) {
	key := timekey.Derive(claim.MetricMonth, claim.MetricYear)
	if !key.Resolved() {
		var diag *model.ReferenceRow
		if len(rows) > 0 {
			diag = &rows[0]
		}
		switch key.Reason {
		case timekey.ReasonMonthMissing:
			return model.OutcomeMonthMissing, diag, key
		default:
			return model.OutcomeYearMissing, diag, key
		}
	}

	if len(rows) == 0 {
		return model.OutcomeInsufficientData, nil, key
	}

	var last *model.ReferenceRow
	compared := false
	for i := range rows {
		stored, ok := rows[i].Value(key.Value)
		if !ok {
			// Column absent from the row's schema: not a tried comparison
			continue
		}
		compared = true
		last = &rows[i]
		if stored == claim.MetricValue {
			return model.OutcomeValid, &rows[i], key
		}
	}

	if !compared {
		return model.OutcomeInsufficientData, nil, key
	}
	return model.OutcomeInvalidMetric, last, key
}
