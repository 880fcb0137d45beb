// Package airport normalizes the raw airport-code catalog into the
// warehouse's airport dataset: restricted to one country, composite fields
// split out, and the two alternative code systems (IATA and local) reconciled
// into a single airport_code column.
package airport

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"i94etl/internal/parser/csv"
	"i94etl/internal/schema"
	"i94etl/internal/transformer/builtin"
)

// Header is the declared column layout of the airport catalog. All twelve
// source columns are string-typed; numeric content is parsed during
// normalization so unparsable values degrade to null instead of failing the
// decode.
var Header = []string{
	"ident", "type", "name", "elevation_ft", "continent", "iso_country",
	"iso_region", "municipality", "gps_code", "iata_code", "local_code",
	"coordinates",
}

type rawAirport struct {
	Ident        string `csv:"ident"`
	Type         string `csv:"type"`
	Name         string `csv:"name"`
	ElevationFt  string `csv:"elevation_ft"`
	Continent    string `csv:"continent"`
	ISOCountry   string `csv:"iso_country"`
	ISORegion    string `csv:"iso_region"`
	Municipality string `csv:"municipality"`
	GPSCode      string `csv:"gps_code"`
	IATACode     string `csv:"iata_code"`
	LocalCode    string `csv:"local_code"`
	Coordinates  string `csv:"coordinates"`
}

// Normalizer restricts the catalog to one country and produces the
// normalized airport records.
type Normalizer struct {
	// Country is the ISO country code to keep. Empty defaults to "US".
	Country string
}

// Normalize decodes the catalog CSV from r and returns the normalized
// records plus the number of undecodable rows skipped.
//
// A facility with both code systems populated contributes two records, one
// per airport_code; a facility with neither is excluded. This union is
// intentional so downstream lookups can join from either code system.
func (n Normalizer) Normalize(r io.Reader) ([]schema.AirportRecord, int, error) {
	country := n.Country
	if country == "" {
		country = "US"
	}

	rows, skipped, err := csv.DecodeAll[rawAirport](r, csv.Options{Header: Header})
	if err != nil {
		return nil, 0, fmt.Errorf("airport: %w", err)
	}

	// Exact-duplicate rows appear in the source catalog; drop them before
	// the code-system union so a duplicated facility cannot triple up.
	rows = builtin.DeDup[rawAirport]{Key: rawKey}.Apply(rows)

	var out []schema.AirportRecord
	for _, raw := range rows {
		if raw.ISOCountry != country {
			continue
		}
		base := schema.AirportRecord{
			AirportID:    raw.Ident,
			Type:         raw.Type,
			Name:         raw.Name,
			ElevationFt:  parseElevation(raw.ElevationFt),
			Country:      raw.ISOCountry,
			State:        stateFromRegion(raw.ISORegion),
			Municipality: optional(raw.Municipality),
			GPSCode:      optional(raw.GPSCode),
		}
		base.Latitude, base.Longitude = parseCoordinates(raw.Coordinates)

		// One record per populated code system.
		for _, code := range []string{raw.IATACode, raw.LocalCode} {
			if code == "" {
				continue
			}
			rec := base
			rec.AirportCode = code
			out = append(out, rec)
		}
	}
	return out, skipped, nil
}

// rawKey concatenates every source field, so only byte-identical rows
// collapse.
func rawKey(r rawAirport) string {
	return strings.Join([]string{
		r.Ident, r.Type, r.Name, r.ElevationFt, r.Continent, r.ISOCountry,
		r.ISORegion, r.Municipality, r.GPSCode, r.IATACode, r.LocalCode,
		r.Coordinates,
	}, "\x1f")
}

// stateFromRegion derives the state code from an iso_region like "US-AL".
func stateFromRegion(region string) string {
	if _, state, ok := strings.Cut(region, "-"); ok {
		return state
	}
	return ""
}

// parseCoordinates splits a "lat, long" composite and parses each side. A
// missing or non-numeric side yields nil for that side, not an error.
func parseCoordinates(coords string) (lat, long *float64) {
	first, second, _ := strings.Cut(coords, ",")
	return parseFloat(first), parseFloat(second)
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseElevation(s string) *int32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	e := int32(v)
	return &e
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
