// Package demographics normalizes the semicolon-delimited city demographics
// table: rows without a state are dropped, and the (state, city, race)
// business key is de-duplicated. Source duplicates on that key are expected
// to be exact copies, so keeping the first surviving row is sufficient.
package demographics

import (
	"fmt"
	"io"

	"i94etl/internal/parser/csv"
	"i94etl/internal/schema"
	"i94etl/internal/transformer"
	"i94etl/internal/transformer/builtin"
)

// Header is the declared column layout of the demographics table.
var Header = []string{
	"City", "State", "Median Age", "Male Population", "Female Population",
	"Total Population", "Number of Veterans", "Foreign-born",
	"Average Household Size", "State Code", "Race", "Count",
}

type rawDemographic struct {
	City             string   `csv:"City"`
	State            string   `csv:"State"`
	MedianAge        *float64 `csv:"Median Age"`
	MalePopulation   *int64   `csv:"Male Population"`
	FemalePopulation *int64   `csv:"Female Population"`
	TotalPopulation  *int64   `csv:"Total Population"`
	Veterans         *int64   `csv:"Number of Veterans"`
	ForeignBorn      *int64   `csv:"Foreign-born"`
	AvgHouseholdSize *float64 `csv:"Average Household Size"`
	StateCode        string   `csv:"State Code"`
	Race             string   `csv:"Race"`
	Count            *int64   `csv:"Count"`
}

// Normalize decodes the demographics CSV from r and returns the cleaned
// records plus the number of undecodable rows skipped.
func Normalize(r io.Reader) ([]schema.CityDemographicRecord, int, error) {
	rows, skipped, err := csv.DecodeAll[rawDemographic](r, csv.Options{
		Comma:  ';',
		Header: Header,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("demographics: %w", err)
	}

	chain := transformer.Chain[rawDemographic]{
		builtin.Require[rawDemographic]{Present: func(d rawDemographic) bool {
			return d.State != ""
		}},
		builtin.DeDup[rawDemographic]{Key: func(d rawDemographic) string {
			return d.State + "\x1f" + d.City + "\x1f" + d.Race
		}},
	}
	rows = chain.Apply(rows)

	out := make([]schema.CityDemographicRecord, 0, len(rows))
	for _, d := range rows {
		out = append(out, schema.CityDemographicRecord{
			City:             d.City,
			State:            d.State,
			MedianAge:        d.MedianAge,
			MalePopulation:   d.MalePopulation,
			FemalePopulation: d.FemalePopulation,
			TotalPopulation:  d.TotalPopulation,
			Veterans:         d.Veterans,
			ForeignBorn:      d.ForeignBorn,
			AvgHouseholdSize: d.AvgHouseholdSize,
			StateCode:        d.StateCode,
			Race:             d.Race,
			Count:            d.Count,
		})
	}
	return out, skipped, nil
}
