// Package schema declares the typed record model for every dataset the
// pipeline produces or consumes. Each struct mirrors one dataset; optional
// columns are pointer fields so that "missing" survives the round trip to
// columnar storage (OPTIONAL repetition) instead of collapsing to a zero
// value.
package schema

import "time"

// Epoch is the day-zero of the numeric date offsets carried by the raw
// immigration snapshot (SAS date convention).
var Epoch = time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateLayout is the canonical rendering of derived calendar dates.
const DateLayout = "2006-01-02"

// DimensionEntry is one row of a code→label reference dimension.
type DimensionEntry struct {
	Code  string `parquet:"name=code, type=BYTE_ARRAY, convertedtype=UTF8"`
	Label string `parquet:"name=label, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// PortEntry is one row of the port-of-entry dimension after the label has
// been split into its city and state components. State is nil when the
// source label had no ", " separator (foreign or collapsed ports).
type PortEntry struct {
	Code  string  `parquet:"name=port_code, type=BYTE_ARRAY, convertedtype=UTF8"`
	City  string  `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8"`
	State *string `parquet:"name=state, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

// RawImmigration is one arrival event exactly as it appears in the columnar
// snapshot, with the industry I-94 field names. Numerics are doubles in the
// source, including codes and day offsets.
type RawImmigration struct {
	CICID    *float64 `parquet:"name=cicid, type=DOUBLE, repetitiontype=OPTIONAL"`
	I94Yr    *float64 `parquet:"name=i94yr, type=DOUBLE, repetitiontype=OPTIONAL"`
	I94Mon   *float64 `parquet:"name=i94mon, type=DOUBLE, repetitiontype=OPTIONAL"`
	I94Cit   *float64 `parquet:"name=i94cit, type=DOUBLE, repetitiontype=OPTIONAL"`
	I94Res   *float64 `parquet:"name=i94res, type=DOUBLE, repetitiontype=OPTIONAL"`
	I94Port  *string  `parquet:"name=i94port, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	ArrDate  *float64 `parquet:"name=arrdate, type=DOUBLE, repetitiontype=OPTIONAL"`
	I94Mode  *float64 `parquet:"name=i94mode, type=DOUBLE, repetitiontype=OPTIONAL"`
	I94Addr  *string  `parquet:"name=i94addr, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	DepDate  *float64 `parquet:"name=depdate, type=DOUBLE, repetitiontype=OPTIONAL"`
	I94Bir   *float64 `parquet:"name=i94bir, type=DOUBLE, repetitiontype=OPTIONAL"`
	I94Visa  *float64 `parquet:"name=i94visa, type=DOUBLE, repetitiontype=OPTIONAL"`
	Count    *float64 `parquet:"name=count, type=DOUBLE, repetitiontype=OPTIONAL"`
	DtadFile *string  `parquet:"name=dtadfile, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	VisaPost *string  `parquet:"name=visapost, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Occup    *string  `parquet:"name=occup, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	EntDepA  *string  `parquet:"name=entdepa, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	EntDepD  *string  `parquet:"name=entdepd, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	EntDepU  *string  `parquet:"name=entdepu, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	MatFlag  *string  `parquet:"name=matflag, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	BirYear  *float64 `parquet:"name=biryear, type=DOUBLE, repetitiontype=OPTIONAL"`
	DtAddTo  *string  `parquet:"name=dtaddto, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Gender   *string  `parquet:"name=gender, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	InsNum   *string  `parquet:"name=insnum, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Airline  *string  `parquet:"name=airline, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	AdmNum   *float64 `parquet:"name=admnum, type=DOUBLE, repetitiontype=OPTIONAL"`
	FltNo    *string  `parquet:"name=fltno, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	VisaType *string  `parquet:"name=visatype, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

// ImmigrationRecord is the canonical fact row after enrichment and
// projection. Exactly one ImmigrationRecord is produced per RawImmigration.
//
// us_state, visa_type_code, and arrival_mode are never empty: unmatched or
// missing dimension codes receive their sentinel fallback instead.
type ImmigrationRecord struct {
	Year             int32    `parquet:"name=year, type=INT32"`
	Month            int32    `parquet:"name=month, type=INT32"`
	BirthCountry     *int32   `parquet:"name=birth_country, type=INT32, repetitiontype=OPTIONAL"`
	ResidenceCountry *int32   `parquet:"name=residence_country, type=INT32, repetitiontype=OPTIONAL"`
	Port             *string  `parquet:"name=port, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	ArrivalDate      *string  `parquet:"name=arrival_date, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	ArrivalMode      string   `parquet:"name=arrival_mode, type=BYTE_ARRAY, convertedtype=UTF8"`
	USState          string   `parquet:"name=us_state, type=BYTE_ARRAY, convertedtype=UTF8"`
	DepartureDate    *string  `parquet:"name=departure_date, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Age              *int32   `parquet:"name=age, type=INT32, repetitiontype=OPTIONAL"`
	VisaTypeCode     string   `parquet:"name=visa_type_code, type=BYTE_ARRAY, convertedtype=UTF8"`
	Count            *int32   `parquet:"name=count, type=INT32, repetitiontype=OPTIONAL"`
	DateAdded        *string  `parquet:"name=date_added, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	VisaIssuedIn     *string  `parquet:"name=visa_issued_in, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Occupation       *string  `parquet:"name=occupation, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	ArrivalFlag      *string  `parquet:"name=arrival_flag, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	DepartureFlag    *string  `parquet:"name=departure_flag, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	UpdateFlag       *string  `parquet:"name=update_flag, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	MatchFlag        *string  `parquet:"name=match_flag, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	BirthYear        *int32   `parquet:"name=birth_year, type=INT32, repetitiontype=OPTIONAL"`
	AllowedUntil     *string  `parquet:"name=allowed_until, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Gender           *string  `parquet:"name=gender, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	InsNumber        *string  `parquet:"name=ins_number, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Airline          *string  `parquet:"name=airline, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	AdmissionNumber  *float64 `parquet:"name=admission_number, type=DOUBLE, repetitiontype=OPTIONAL"`
	FlightNumber     *string  `parquet:"name=flight_number, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	VisaType         *string  `parquet:"name=visa_type, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

// AirportRecord is one row of the normalized airport catalog. A facility
// with both an IATA code and a local code contributes two records, one per
// airport_code, so lookups work from either code system.
type AirportRecord struct {
	AirportID    string   `parquet:"name=airport_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Type         string   `parquet:"name=type, type=BYTE_ARRAY, convertedtype=UTF8"`
	Name         string   `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	ElevationFt  *int32   `parquet:"name=elevation_ft, type=INT32, repetitiontype=OPTIONAL"`
	Country      string   `parquet:"name=country, type=BYTE_ARRAY, convertedtype=UTF8"`
	State        string   `parquet:"name=state, type=BYTE_ARRAY, convertedtype=UTF8"`
	Municipality *string  `parquet:"name=municipality, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	GPSCode      *string  `parquet:"name=gps_code, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	AirportCode  string   `parquet:"name=airport_code, type=BYTE_ARRAY, convertedtype=UTF8"`
	Latitude     *float64 `parquet:"name=latitude, type=DOUBLE, repetitiontype=OPTIONAL"`
	Longitude    *float64 `parquet:"name=longitude, type=DOUBLE, repetitiontype=OPTIONAL"`
}

// CityDemographicRecord is one (state, city, race) observation. Unique per
// that triple after dedup.
type CityDemographicRecord struct {
	City             string   `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8"`
	State            string   `parquet:"name=state, type=BYTE_ARRAY, convertedtype=UTF8"`
	MedianAge        *float64 `parquet:"name=median_age, type=DOUBLE, repetitiontype=OPTIONAL"`
	MalePopulation   *int64   `parquet:"name=male_population, type=INT64, repetitiontype=OPTIONAL"`
	FemalePopulation *int64   `parquet:"name=female_population, type=INT64, repetitiontype=OPTIONAL"`
	TotalPopulation  *int64   `parquet:"name=total_population, type=INT64, repetitiontype=OPTIONAL"`
	Veterans         *int64   `parquet:"name=veterans, type=INT64, repetitiontype=OPTIONAL"`
	ForeignBorn      *int64   `parquet:"name=foreign_born, type=INT64, repetitiontype=OPTIONAL"`
	AvgHouseholdSize *float64 `parquet:"name=avg_household_size, type=DOUBLE, repetitiontype=OPTIONAL"`
	StateCode        string   `parquet:"name=state_code, type=BYTE_ARRAY, convertedtype=UTF8"`
	Race             string   `parquet:"name=race, type=BYTE_ARRAY, convertedtype=UTF8"`
	Count            *int64   `parquet:"name=count, type=INT64, repetitiontype=OPTIONAL"`
}
