package immigration

import (
	"testing"

	"i94etl/internal/schema"
)

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func dims() Dimensions {
	return Dimensions{
		State: map[string]string{"AL": "ALABAMA", "99": "All Other Codes"},
		Visa:  map[string]string{"1": "Business", "2": "Pleasure", "3": "Student"},
		Mode:  map[string]string{"1": "Air", "2": "Sea", "3": "Land"},
	}
}

func TestDeriveDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		offset *float64
		want   *string
	}{
		{"epoch", f(0), s("1960-01-01")},
		{"one day", f(1), s("1960-01-02")},
		{"april 2016", f(20566), s("2016-04-22")},
		{"null", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveDate(tc.offset)
			switch {
			case tc.want == nil && got != nil:
				t.Fatalf("got %q, want nil", *got)
			case tc.want != nil && got == nil:
				t.Fatalf("got nil, want %q", *tc.want)
			case tc.want != nil && *got != *tc.want:
				t.Fatalf("got %q, want %q", *got, *tc.want)
			}
		})
	}
}

func TestTransformJoinsAndSentinels(t *testing.T) {
	t.Parallel()

	raw := []schema.RawImmigration{
		{I94Yr: f(2016), I94Mon: f(4), I94Addr: s("AL"), I94Visa: f(2), I94Mode: f(1), ArrDate: f(20566)},
		{I94Yr: f(2016), I94Mon: f(4), I94Addr: s("ZZ"), I94Visa: f(7), I94Mode: f(8)},
		{I94Yr: f(2016), I94Mon: f(4)}, // all join keys null
	}
	got := Transform(raw, dims())
	if len(got) != len(raw) {
		t.Fatalf("cardinality changed: %d in, %d out", len(raw), len(got))
	}

	matched := got[0]
	if matched.USState != "ALABAMA" {
		t.Fatalf("us_state = %q, want ALABAMA", matched.USState)
	}
	if matched.VisaTypeCode != "Pleasure" {
		t.Fatalf("visa_type_code = %q, want Pleasure", matched.VisaTypeCode)
	}
	if matched.ArrivalMode != "Air" {
		t.Fatalf("arrival_mode = %q, want Air", matched.ArrivalMode)
	}
	if matched.ArrivalDate == nil || *matched.ArrivalDate != "2016-04-22" {
		t.Fatalf("arrival_date = %v", matched.ArrivalDate)
	}

	unmatched := got[1]
	if unmatched.USState != StateUnknown {
		t.Fatalf("us_state = %q, want %q", unmatched.USState, StateUnknown)
	}
	if unmatched.VisaTypeCode != VisaOther {
		t.Fatalf("visa_type_code = %q, want %q", unmatched.VisaTypeCode, VisaOther)
	}
	if unmatched.ArrivalMode != ModeNotReported {
		t.Fatalf("arrival_mode = %q, want %q", unmatched.ArrivalMode, ModeNotReported)
	}

	nulls := got[2]
	if nulls.USState != StateUnknown || nulls.VisaTypeCode != VisaOther || nulls.ArrivalMode != ModeNotReported {
		t.Fatalf("null join keys should take sentinels, got %#v", nulls)
	}
	if nulls.ArrivalDate != nil {
		t.Fatalf("arrival_date = %v, want nil", nulls.ArrivalDate)
	}
}

func TestTransformUnmatchedVisaLeavesOtherFieldsAlone(t *testing.T) {
	t.Parallel()

	raw := []schema.RawImmigration{{
		I94Yr:   f(2016),
		I94Mon:  f(4),
		I94Addr: s("AL"),
		I94Visa: f(42), // not in dimension
		I94Mode: f(1),
		I94Port: s("ANC"),
		AdmNum:  f(12345678901),
		Gender:  s("F"),
	}}
	got := Transform(raw, dims())[0]
	if got.VisaTypeCode != VisaOther {
		t.Fatalf("visa_type_code = %q, want %q", got.VisaTypeCode, VisaOther)
	}
	if got.USState != "ALABAMA" || got.ArrivalMode != "Air" {
		t.Fatalf("unrelated joins affected: %#v", got)
	}
	if got.Port == nil || *got.Port != "ANC" {
		t.Fatalf("port = %v", got.Port)
	}
	if got.AdmissionNumber == nil || *got.AdmissionNumber != 12345678901 {
		t.Fatalf("admission_number = %v", got.AdmissionNumber)
	}
	if got.Gender == nil || *got.Gender != "F" {
		t.Fatalf("gender = %v", got.Gender)
	}
}

func TestTransformProjection(t *testing.T) {
	t.Parallel()

	raw := []schema.RawImmigration{{
		I94Yr:    f(2016),
		I94Mon:   f(4),
		I94Cit:   f(438),
		I94Res:   f(438),
		I94Bir:   f(35),
		BirYear:  f(1981),
		DepDate:  f(20600),
		Count:    f(1),
		VisaPost: s("SYD"),
		Occup:    s("STU"),
		EntDepU:  s("U"),
		InsNum:   s("2691"),
	}}
	got := Transform(raw, dims())[0]
	if got.Year != 2016 || got.Month != 4 {
		t.Fatalf("year/month = %d/%d", got.Year, got.Month)
	}
	if got.BirthCountry == nil || *got.BirthCountry != 438 {
		t.Fatalf("birth_country = %v", got.BirthCountry)
	}
	if got.Age == nil || *got.Age != 35 {
		t.Fatalf("age = %v", got.Age)
	}
	if got.BirthYear == nil || *got.BirthYear != 1981 {
		t.Fatalf("birth_year = %v", got.BirthYear)
	}
	if got.DepartureDate == nil || *got.DepartureDate != "2016-05-26" {
		t.Fatalf("departure_date = %v", got.DepartureDate)
	}
	if got.VisaIssuedIn == nil || *got.VisaIssuedIn != "SYD" {
		t.Fatalf("visa_issued_in = %v", got.VisaIssuedIn)
	}
	if got.Occupation == nil || *got.Occupation != "STU" {
		t.Fatalf("occupation = %v", got.Occupation)
	}
	if got.UpdateFlag == nil || *got.UpdateFlag != "U" {
		t.Fatalf("update_flag = %v", got.UpdateFlag)
	}
	if got.InsNumber == nil || *got.InsNumber != "2691" {
		t.Fatalf("ins_number = %v", got.InsNumber)
	}
}
