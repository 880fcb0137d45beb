// Package csv decodes fixed-schema CSV files into typed records. The column
// layout of each input is declared up front; a header that does not match the
// declaration is a fatal schema mismatch, because silently coercing a
// reshaped input would corrupt every downstream partition.
//
// Row-level problems stay soft: a row that cannot be decoded into the record
// type is skipped and counted, never fatal.
package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jszwec/csvutil"
)

// Options configures a fixed-schema decode.
type Options struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// Header is the declared column layout, in order. The input header must
	// match exactly (after whitespace trimming) or the decode fails with a
	// *SchemaError.
	Header []string
}

// SchemaError reports an input whose columns do not match the declared
// schema. It aborts the stage.
type SchemaError struct {
	Want []string
	Got  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("csv: header mismatch: want [%s], got [%s]",
		strings.Join(e.Want, ";"), strings.Join(e.Got, ";"))
}

// DecodeAll decodes every row of r into T via csvutil struct tags and
// returns the decoded rows along with the number of rows skipped due to
// per-row decode errors.
//
// The first record is the header and is validated against opt.Header before
// any row is decoded.
func DecodeAll[T any](r io.Reader, opt Options) ([]T, int, error) {
	cr := stdcsv.NewReader(r)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		return nil, 0, fmt.Errorf("csv: read header: %w", err)
	}
	if err := checkHeader(opt.Header, dec.Header()); err != nil {
		return nil, 0, err
	}

	var out []T
	skipped := 0
	for line := 2; ; line++ {
		var rec T
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("csv: skipping row %d: %v", line, err)
			skipped++
			continue
		}
		out = append(out, rec)
	}
	return out, skipped, nil
}

// checkHeader compares the declared and observed headers column by column.
func checkHeader(want, got []string) error {
	if len(want) == 0 {
		return nil
	}
	if len(want) != len(got) {
		return &SchemaError{Want: want, Got: got}
	}
	for i := range want {
		if strings.TrimSpace(got[i]) != want[i] {
			return &SchemaError{Want: want, Got: got}
		}
	}
	return nil
}
