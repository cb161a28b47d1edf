package refstore

import (
	"strings"
	"testing"

	"github.com/veridical/veridical/internal/model"
)

const sampleCSV = `country,indicator,source,link,currency_code,unit,category,frequency,note,tag,country_code,indicator_definition,nov_03,2003
Norway,Retail Trade Growth,Statistics Norway,https://example.com/rtg,NOK,percent,Trade,Monthly,,retail,NO,Month-over-month retail volume change,5.6,1.2
Norway,GDP Growth Rate,Statistics Norway,https://example.com/gdp,NOK,percent,GDP,Yearly,,gdp,NO,Annual GDP change,,5.6
Sweden,Retail Trade Growth,Statistics Sweden,https://example.com/se,SEK,percent,Trade,Monthly,,retail,SE,Month-over-month retail volume change,2.1,0.9
`

func loadSample(t *testing.T) *Store {
	t.Helper()
	store, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return store
}

func TestReadCSV_SchemaSplit(t *testing.T) {
	store := loadSample(t)

	if store.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", store.Len())
	}

	rows := store.Filter([]Predicate{Eq(model.ColCountry, "Norway")})
	if len(rows) != 2 {
		t.Fatalf("Expected 2 Norway rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Indicator != "Retail Trade Growth" {
		t.Errorf("Expected descriptive field mapped, got indicator %q", first.Indicator)
	}
	if v, ok := first.Value("nov_03"); !ok || v != "5.6" {
		t.Errorf("Expected series value 5.6 at nov_03, got %q (present=%v)", v, ok)
	}
	if _, ok := first.Field("nov_03"); ok {
		t.Error("Time-series column should not be a descriptive field")
	}
}

func TestReadCSV_EmptyCellIsNullObservation(t *testing.T) {
	store := loadSample(t)

	rows := store.Filter([]Predicate{
		Eq(model.ColCountry, "Norway"),
		Contains(model.ColIndicator, "GDP"),
	})
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}

	v, ok := rows[0].Value("nov_03")
	if !ok {
		t.Fatal("Expected nov_03 column present for every row of the table")
	}
	if v != "" {
		t.Errorf("Expected empty (null) observation, got %q", v)
	}
}

func TestReadCSV_RaggedTrailingCells(t *testing.T) {
	// Rows shorter than the header are padded with null observations.
	csv := "country,indicator,source,link,currency_code,unit,category,frequency,note,tag,country_code,indicator_definition,nov_03\n" +
		"Norway,Retail Trade Growth,Statistics Norway\n"

	store, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Expected ragged row tolerated, got %v", err)
	}
	rows := store.Filter([]Predicate{Eq(model.ColCountry, "Norway")})
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if v, ok := rows[0].Value("nov_03"); !ok || v != "" {
		t.Errorf("Expected null observation for missing trailing cell, got %q (present=%v)", v, ok)
	}
}

func TestReadCSV_TooManyCells(t *testing.T) {
	csv := "country,indicator\nNorway,GDP,extra\n"
	if _, err := ReadCSV(strings.NewReader(csv)); err == nil {
		t.Error("Expected error for a row wider than the header")
	}
}

func TestFilter_EqIsCaseSensitive(t *testing.T) {
	store := loadSample(t)

	if rows := store.Filter([]Predicate{Eq(model.ColCountry, "norway")}); len(rows) != 0 {
		t.Errorf("Expected exact-match country filter, got %d rows for lowercase", len(rows))
	}
}

func TestFilter_ContainsIsCaseInsensitive(t *testing.T) {
	store := loadSample(t)

	rows := store.Filter([]Predicate{Contains(model.ColIndicator, "retail trade")})
	if len(rows) != 2 {
		t.Errorf("Expected 2 rows for case-insensitive containment, got %d", len(rows))
	}
}

func TestFilter_InsertionOrder(t *testing.T) {
	store := loadSample(t)

	rows := store.Filter(nil)
	if len(rows) != 3 {
		t.Fatalf("Expected all rows, got %d", len(rows))
	}
	if rows[0].Country != "Norway" || rows[2].Country != "Sweden" {
		t.Error("Expected rows returned in table order")
	}
}

func TestFilter_UnknownColumn(t *testing.T) {
	store := loadSample(t)

	if rows := store.Filter([]Predicate{Eq("no_such_column", "x")}); len(rows) != 0 {
		t.Errorf("Expected no rows for unknown column, got %d", len(rows))
	}
}

func TestCountries(t *testing.T) {
	store := loadSample(t)

	if !store.HasCountry("Norway") || !store.HasCountry("Sweden") {
		t.Error("Expected Norway and Sweden to be known countries")
	}
	if store.HasCountry("Atlantis") {
		t.Error("Atlantis should not be a known country")
	}

	names := store.Countries()
	if len(names) != 2 || names[0] != "Norway" || names[1] != "Sweden" {
		t.Errorf("Expected sorted [Norway Sweden], got %v", names)
	}
}

func TestHasColumn(t *testing.T) {
	store := loadSample(t)

	if !store.HasColumn("nov_03") || !store.HasColumn(model.ColCountry) {
		t.Error("Expected header columns to be known")
	}
	if store.HasColumn("dec_99") {
		t.Error("dec_99 is not in the header and should be unknown")
	}
}
