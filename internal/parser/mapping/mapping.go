// Package mapping parses the line-oriented reference-code files that define
// the warehouse dimensions (country, state, visa category, arrival mode,
// port of entry). Each input line carries one `code<sep>label` pair, usually
// wrapped in decorative single quotes left over from the source extracts.
//
// Parsing is soft-fail: a line that does not split into exactly two fields,
// or that repeats an already-seen code, is skipped and counted, never fatal.
// The mapping files are small and hand-curated, so a handful of bad lines is
// expected and must not abort a run.
package mapping

import (
	"fmt"
	"log"
	"strings"

	"i94etl/internal/schema"
)

// Dimension selects the dimension-specific cleanup rules applied after the
// generic code/label split.
type Dimension string

const (
	// DimensionCountry replaces labels that mean "no country recorded",
	// "invalid code", or "collapsed entry" with the literal label "Other".
	DimensionCountry Dimension = "country"
	// DimensionState additionally strips stray tab characters from codes.
	DimensionState Dimension = "state"
	// DimensionVisa has no extra rules beyond the generic cleanup.
	DimensionVisa Dimension = "visa"
	// DimensionMode has no extra rules beyond the generic cleanup.
	DimensionMode Dimension = "mode"
	// DimensionPort keeps the raw label; use Ports to split it into the
	// city and state components.
	DimensionPort Dimension = "port"
)

// Options configures a mapping Parser.
type Options struct {
	// Sep is the field separator between code and label. Observed values
	// across the reference files: " = ", "=", and a tab.
	Sep string

	// Dimension selects the cleanup rules. Empty applies only the generic
	// quote/whitespace cleanup.
	Dimension Dimension
}

// Parser parses one mapping file according to Options. It is safe to reuse
// across inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// countryOtherPrefixes are the case-insensitive label prefixes that mark a
// country entry as unusable (replaced with "Other").
var countryOtherPrefixes = []string{"no country", "invalid", "collapsed"}

// OtherLabel is the substitute label for unusable country entries and the
// visa-dimension join sentinel.
const OtherLabel = "Other"

// Parse consumes the lines of a mapping file and returns the parsed entries
// along with the number of lines skipped as malformed or duplicate. Blank
// lines are ignored without counting. Codes are unique in the result: the
// first occurrence wins and later repeats are skipped.
func (p *Parser) Parse(lines []string) ([]schema.DimensionEntry, int) {
	sep := p.opt.Sep
	if sep == "" {
		sep = "="
	}

	out := make([]schema.DimensionEntry, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	skipped := 0

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, sep, 2)
		if len(parts) != 2 {
			log.Printf("mapping: skipping line %d: no %q separator", i+1, sep)
			skipped++
			continue
		}

		code := cleanField(parts[0])
		label := cleanField(parts[1])
		if p.opt.Dimension == DimensionState {
			code = strings.ReplaceAll(code, "\t", "")
		}
		if code == "" || label == "" {
			log.Printf("mapping: skipping line %d: empty code or label", i+1)
			skipped++
			continue
		}
		if _, dup := seen[code]; dup {
			log.Printf("mapping: skipping line %d: duplicate code %q", i+1, code)
			skipped++
			continue
		}
		seen[code] = struct{}{}

		if p.opt.Dimension == DimensionCountry && isOtherCountry(label) {
			label = OtherLabel
		}
		out = append(out, schema.DimensionEntry{Code: code, Label: label})
	}
	return out, skipped
}

// cleanField trims surrounding whitespace and strips decorative single
// quotes from a code or label field.
func cleanField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "'", ""))
}

// isOtherCountry reports whether a country label means "no usable country":
// not recorded, an invalid code, or a collapsed/aggregated entry.
func isOtherCountry(label string) bool {
	l := strings.ToLower(label)
	for _, p := range countryOtherPrefixes {
		if strings.HasPrefix(l, p) {
			return true
		}
	}
	return false
}

// Ports splits port dimension labels of the form "CITY, ST" into their city
// and state components. A label without the ", " separator keeps its full
// text as the city and a nil state.
func Ports(entries []schema.DimensionEntry) []schema.PortEntry {
	out := make([]schema.PortEntry, 0, len(entries))
	for _, e := range entries {
		pe := schema.PortEntry{Code: e.Code, City: e.Label}
		if city, state, ok := strings.Cut(e.Label, ", "); ok {
			st := strings.TrimSpace(state)
			pe.City = city
			pe.State = &st
		}
		out = append(out, pe)
	}
	return out
}

// Lookup builds the code→label map used by the fact-enrichment joins. Codes
// are unique per Parse, so the map is lossless.
func Lookup(entries []schema.DimensionEntry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Code] = e.Label
	}
	return m
}

// ValidateNumericCodes verifies every code is an integer literal. The visa
// and mode dimensions are keyed numerically in the fact snapshot; a
// non-numeric code here would make the join-key normalization in the fact
// transformer miss silently.
func ValidateNumericCodes(entries []schema.DimensionEntry) error {
	for _, e := range entries {
		for _, r := range e.Code {
			if r < '0' || r > '9' {
				return fmt.Errorf("mapping: code %q is not numeric", e.Code)
			}
		}
	}
	return nil
}
