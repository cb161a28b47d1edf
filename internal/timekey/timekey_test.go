package timekey

import "testing"

func TestDerive_MonthlyKey(t *testing.T) {
	tests := []struct {
		month string
		year  string
		want  string
	}{
		{"November", "2003", "nov_03"},
		{"november", "2003", "nov_03"},
		{"NOVEMBER", "2003", "nov_03"},
		{"Nov", "2003", "nov_03"},
		{"January", "1999", "jan_99"},
		{"March", "2021", "mar_21"},
		{" November ", " 2003 ", "nov_03"},
	}

	for _, tt := range tests {
		key := Derive(tt.month, tt.year)
		if !key.Resolved() {
			t.Errorf("Derive(%q, %q): expected resolved key, got reason %q", tt.month, tt.year, key.Reason)
			continue
		}
		if key.Value != tt.want {
			t.Errorf("Derive(%q, %q) = %q, want %q", tt.month, tt.year, key.Value, tt.want)
		}
	}
}

func TestDerive_YearlyKey(t *testing.T) {
	key := Derive("", "2003")
	if !key.Resolved() {
		t.Fatalf("Expected resolved yearly key, got reason %q", key.Reason)
	}
	if key.Value != "2003" {
		t.Errorf("Expected raw year as key, got %q", key.Value)
	}
}

func TestDerive_MonthSentinels(t *testing.T) {
	// A month that is present but unreadable fails even with a valid year.
	for _, month := range []string{"None", "none", "NA", "na", "N/A", "n/a", "XX"} {
		key := Derive(month, "2003")
		if key.Resolved() {
			t.Errorf("Derive(%q, \"2003\"): expected unresolved, got key %q", month, key.Value)
			continue
		}
		if key.Reason != ReasonMonthMissing {
			t.Errorf("Derive(%q, \"2003\"): expected MonthMissing, got %q", month, key.Reason)
		}
	}
}

func TestDerive_YearMissing(t *testing.T) {
	tests := []struct {
		month string
		year  string
	}{
		{"November", ""},
		{"November", "Unknown"},
		{"", ""},
		{"", "Unk"},
	}

	for _, tt := range tests {
		key := Derive(tt.month, tt.year)
		if key.Resolved() {
			t.Errorf("Derive(%q, %q): expected unresolved, got key %q", tt.month, tt.year, key.Value)
			continue
		}
		if key.Reason != ReasonYearMissing {
			t.Errorf("Derive(%q, %q): expected YearMissing, got %q", tt.month, tt.year, key.Reason)
		}
	}
}

func TestDerive_MonthMissingWinsOverBadYear(t *testing.T) {
	// An unreadable month is reported before an unreadable year.
	key := Derive("NA", "Unknown")
	if key.Reason != ReasonMonthMissing {
		t.Errorf("Expected MonthMissing, got %q", key.Reason)
	}
}

func TestDerive_Deterministic(t *testing.T) {
	// Derivation is pure: the same inputs always produce the same key,
	// regardless of when they are evaluated.
	first := Derive("November", "2003")
	for i := 0; i < 10; i++ {
		if got := Derive("November", "2003"); got != first {
			t.Fatalf("Derive is not deterministic: %v vs %v", got, first)
		}
	}
}
