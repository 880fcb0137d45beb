package demographics

import (
	"strings"
	"testing"
)

const header = "City;State;Median Age;Male Population;Female Population;Total Population;Number of Veterans;Foreign-born;Average Household Size;State Code;Race;Count"

func TestNormalizeDecodesTypedColumns(t *testing.T) {
	t.Parallel()

	in := header + "\n" +
		"Silver Spring;Maryland;33.8;40601;41862;82463;1562;30908;2.6;MD;Hispanic or Latino;25924\n"
	got, skipped, err := Normalize(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if skipped != 0 || len(got) != 1 {
		t.Fatalf("rows = %d (%d skipped), want 1 (0)", len(got), skipped)
	}
	r := got[0]
	if r.City != "Silver Spring" || r.StateCode != "MD" || r.Race != "Hispanic or Latino" {
		t.Fatalf("row = %#v", r)
	}
	if r.MedianAge == nil || *r.MedianAge != 33.8 {
		t.Fatalf("median age = %v", r.MedianAge)
	}
	if r.TotalPopulation == nil || *r.TotalPopulation != 82463 {
		t.Fatalf("total population = %v", r.TotalPopulation)
	}
}

func TestNormalizeDropsNullState(t *testing.T) {
	t.Parallel()

	in := header + "\n" +
		"Nowhere;;30.0;1;1;2;0;0;1.0;XX;White;2\n" +
		"Mobile;Alabama;38.5;90000;105000;195000;12000;7000;2.4;AL;White;150000\n"
	got, _, err := Normalize(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(got) != 1 || got[0].City != "Mobile" {
		t.Fatalf("rows = %#v", got)
	}
}

func TestNormalizeDedupsByStateCityRace(t *testing.T) {
	t.Parallel()

	row := "Mobile;Alabama;38.5;90000;105000;195000;12000;7000;2.4;AL;White;150000\n"
	in := header + "\n" + row + row +
		"Mobile;Alabama;38.5;90000;105000;195000;12000;7000;2.4;AL;Asian;3500\n"
	got, _, err := Normalize(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}

	seen := make(map[string]int)
	for _, r := range got {
		seen[r.State+"|"+r.City+"|"+r.Race]++
	}
	for k, n := range seen {
		if n != 1 {
			t.Fatalf("key %s appears %d times", k, n)
		}
	}
}

func TestNormalizeHeaderMismatchFatal(t *testing.T) {
	t.Parallel()

	in := "City;State\nMobile;Alabama\n"
	_, _, err := Normalize(strings.NewReader(in))
	if err == nil {
		t.Fatal("expected schema mismatch error")
	}
}
