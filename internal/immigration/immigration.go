// Package immigration implements the fact-table pipeline: it derives
// calendar dates from the snapshot's numeric day offsets, enriches each
// arrival event against the state, visa, and mode dimensions with explicit
// sentinel fallbacks, and projects the result into the canonical fact
// schema.
package immigration

import (
	"strconv"

	"i94etl/internal/schema"
)

// Sentinel fallbacks for unresolved dimension codes. An unmatched (or null)
// join key receives the sentinel; it is never an error and never drops the
// row.
const (
	// StateUnknown means "state unknown / not applicable".
	StateUnknown = "99"
	// VisaOther is the fallback visa category.
	VisaOther = "Other"
	// ModeNotReported is the fallback arrival mode.
	ModeNotReported = "Not reported"
)

// Dimensions carries the read-only code→label lookups consumed by Transform.
// They are built once by the mapping parser and never mutated afterwards.
type Dimensions struct {
	State map[string]string // i94addr code → state label
	Visa  map[string]string // i94visa code → visa category label
	Mode  map[string]string // i94mode code → arrival mode label
}

// Transform enriches and projects the raw fact rows. The output has exactly
// one record per input row: dimension codes are unique, so the left joins
// can neither duplicate nor drop, and unresolved codes fall back to their
// sentinels.
func Transform(raw []schema.RawImmigration, dims Dimensions) []schema.ImmigrationRecord {
	out := make([]schema.ImmigrationRecord, 0, len(raw))
	for _, r := range raw {
		out = append(out, schema.ImmigrationRecord{
			Year:             toInt32(r.I94Yr),
			Month:            toInt32(r.I94Mon),
			BirthCountry:     toOptInt32(r.I94Cit),
			ResidenceCountry: toOptInt32(r.I94Res),
			Port:             r.I94Port,
			ArrivalDate:      DeriveDate(r.ArrDate),
			ArrivalMode:      lookup(dims.Mode, numericCode(r.I94Mode), ModeNotReported),
			USState:          lookup(dims.State, stringCode(r.I94Addr), StateUnknown),
			DepartureDate:    DeriveDate(r.DepDate),
			Age:              toOptInt32(r.I94Bir),
			VisaTypeCode:     lookup(dims.Visa, numericCode(r.I94Visa), VisaOther),
			Count:            toOptInt32(r.Count),
			DateAdded:        r.DtadFile,
			VisaIssuedIn:     r.VisaPost,
			Occupation:       r.Occup,
			ArrivalFlag:      r.EntDepA,
			DepartureFlag:    r.EntDepD,
			UpdateFlag:       r.EntDepU,
			MatchFlag:        r.MatFlag,
			BirthYear:        toOptInt32(r.BirYear),
			AllowedUntil:     r.DtAddTo,
			Gender:           r.Gender,
			InsNumber:        r.InsNum,
			Airline:          r.Airline,
			AdmissionNumber:  r.AdmNum,
			FlightNumber:     r.FltNo,
			VisaType:         r.VisaType,
		})
	}
	return out
}

// DeriveDate turns a numeric day offset into a calendar date string:
// epoch (1960-01-01) + offset days, rendered as YYYY-MM-DD. The arithmetic
// is pure day addition in UTC: no timezone shifting, no rounding beyond the
// integral truncation of the stored double. A nil offset yields nil.
func DeriveDate(offset *float64) *string {
	if offset == nil {
		return nil
	}
	d := schema.Epoch.AddDate(0, 0, int(*offset)).Format(schema.DateLayout)
	return &d
}

// lookup resolves a dimension code to its label, or to the sentinel when the
// code is absent from the dimension or the key itself is missing.
func lookup(dim map[string]string, code string, sentinel string) string {
	if code != "" {
		if label, ok := dim[code]; ok {
			return label
		}
	}
	return sentinel
}

// numericCode renders a float-typed source code the way the mapping files
// key it: as a base-10 integer literal. Nil yields "".
func numericCode(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(int64(*v), 10)
}

func stringCode(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func toInt32(v *float64) int32 {
	if v == nil {
		return 0
	}
	return int32(*v)
}

func toOptInt32(v *float64) *int32 {
	if v == nil {
		return nil
	}
	i := int32(*v)
	return &i
}
