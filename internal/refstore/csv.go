package refstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/veridical/veridical/internal/model"
)

// LoadCSV reads the reference table from a CSV file. The header row defines
// the schema: the twelve descriptive columns are mapped to named fields,
// every other column is treated as a time-series column keyed by its header
// ("nov_03", "2003", ...). Empty cells are null observations.
func LoadCSV(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference table: %w", err)
	}
	defer func() { _ = f.Close() }()

	store, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read reference table %s: %w", path, err)
	}
	return store, nil
}

// ReadCSV parses reference table rows from r
func ReadCSV(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Ragged trailing cells tolerated, validated below

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("empty header")
	}

	descriptive := make(map[string]bool, 12)
	for _, c := range []string{
		model.ColCountry, model.ColIndicator, model.ColSource, model.ColLink,
		model.ColCurrencyCode, model.ColUnit, model.ColCategory, model.ColFrequency,
		model.ColNote, model.ColTag, model.ColCountryCode, model.ColIndicatorDefinition,
	} {
		descriptive[c] = true
	}

	var rows []model.ReferenceRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++
		if len(record) > len(header) {
			return nil, fmt.Errorf("line %d: %d cells for %d columns", line, len(record), len(header))
		}

		row := model.ReferenceRow{Series: make(map[string]string)}
		for i, col := range header {
			var cell string
			if i < len(record) {
				cell = record[i]
			}
			if descriptive[col] {
				setField(&row, col, cell)
			} else {
				row.Series[col] = cell
			}
		}
		rows = append(rows, row)
	}

	return New(rows, header), nil
}

func setField(row *model.ReferenceRow, column, value string) {
	switch column {
	case model.ColCountry:
		row.Country = value
	case model.ColIndicator:
		row.Indicator = value
	case model.ColSource:
		row.Source = value
	case model.ColLink:
		row.Link = value
	case model.ColCurrencyCode:
		row.CurrencyCode = value
	case model.ColUnit:
		row.Unit = value
	case model.ColCategory:
		row.Category = value
	case model.ColFrequency:
		row.Frequency = value
	case model.ColNote:
		row.Note = value
	case model.ColTag:
		row.Tag = value
	case model.ColCountryCode:
		row.CountryCode = value
	case model.ColIndicatorDefinition:
		row.IndicatorDefinition = value
	}
}
