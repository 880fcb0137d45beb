package csv

import (
	"errors"
	"strings"
	"testing"
)

type row struct {
	Name  string `csv:"name"`
	Value *int64 `csv:"value"`
}

func TestDecodeAllBasic(t *testing.T) {
	t.Parallel()

	in := "name,value\nalpha,1\nbeta,\n"
	got, skipped, err := DecodeAll[row](strings.NewReader(in), Options{Header: []string{"name", "value"}})
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Value == nil || *got[0].Value != 1 {
		t.Fatalf("row 0 = %#v", got[0])
	}
	if got[1].Value != nil {
		t.Fatalf("empty value should decode to nil, got %#v", got[1])
	}
}

func TestDecodeAllHeaderMismatch(t *testing.T) {
	t.Parallel()

	in := "name,extra,value\na,b,1\n"
	_, _, err := DecodeAll[row](strings.NewReader(in), Options{Header: []string{"name", "value"}})
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SchemaError", err)
	}
}

func TestDecodeAllSkipsBadRows(t *testing.T) {
	t.Parallel()

	in := "name;value\nok;3\nbad;not-a-number\nalso-ok;4\n"
	got, skipped, err := DecodeAll[row](strings.NewReader(in), Options{
		Comma:  ';',
		Header: []string{"name", "value"},
	})
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
	if len(got) != 2 || got[1].Name != "also-ok" {
		t.Fatalf("rows = %#v", got)
	}
}
