// Package config defines the canonical, JSON-serializable configuration
// model for the warehouse ETL run. It is intentionally small, explicit, and
// free of behavior so that a run can be described by a single file on disk
// and passed through the program without additional glue code.
//
// Field names in Go mirror the JSON structure used in run files under
// configs/*.json. Decoding is performed by the standard library; static
// validation lives in validate.go.
//
// Example (trimmed):
//
//	{
//	  "job": "i94_2016_04",
//	  "mappings": {
//	    "country": { "path": "ref/i94cntyl.txt", "sep": " =  " },
//	    "state":   { "path": "ref/i94addrl.txt", "sep": "=" }
//	  },
//	  "immigration": { "path": "data/i94_apr16.parquet" },
//	  "output":      { "root": "out" },
//	  "mirror":      { "enabled": true, "bucket": "my-warehouse" }
//	}
package config

// Pipeline describes one full warehouse run. It is the top-level object
// decoded from a run file.
type Pipeline struct {
	// Job names the run; it labels log lines and metrics.
	Job string `json:"job"`

	// Mappings lists the five reference-code inputs.
	Mappings Mappings `json:"mappings"`

	// Airports configures the airport-catalog input.
	Airports Airports `json:"airports"`

	// Demographics configures the city-demographics input.
	Demographics Demographics `json:"demographics"`

	// Immigration configures the fact snapshot input.
	Immigration Immigration `json:"immigration"`

	// Output configures the local warehouse root all datasets are written
	// under.
	Output Output `json:"output"`

	// Mirror configures the object-storage upload of the finished output
	// tree.
	Mirror Mirror `json:"mirror"`

	// Runtime controls concurrency.
	Runtime Runtime `json:"runtime"`
}

// MappingFile locates one reference-code file and its parsing parameters.
type MappingFile struct {
	// Path is the local filesystem path to the mapping file.
	Path string `json:"path"`

	// Sep is the code/label separator. Empty means "=".
	Sep string `json:"sep"`

	// Encoding is the file's character encoding: "utf-8" (default) or
	// "windows-1252".
	Encoding string `json:"encoding"`
}

// Mappings carries the per-dimension mapping files.
type Mappings struct {
	Country MappingFile `json:"country"`
	State   MappingFile `json:"state"`
	Visa    MappingFile `json:"visa"`
	Mode    MappingFile `json:"mode"`
	Port    MappingFile `json:"port"`
}

// Airports configures the airport-catalog stage.
type Airports struct {
	Path string `json:"path"`

	// Country is the ISO country code the catalog is restricted to. Empty
	// means "US".
	Country string `json:"country"`
}

// Demographics configures the city-demographics stage.
type Demographics struct {
	Path string `json:"path"`
}

// Immigration configures the fact-snapshot stage. Path may be a single
// parquet file or a directory of them.
type Immigration struct {
	Path string `json:"path"`
}

// Output configures the local warehouse layout.
type Output struct {
	// Root is the directory all partitioned datasets are written under.
	Root string `json:"root"`
}

// Mirror configures the object-storage upload.
type Mirror struct {
	// Enabled turns the upload on. When false the run stops after the local
	// write.
	Enabled bool `json:"enabled"`

	// Bucket is the destination bucket name.
	Bucket string `json:"bucket"`

	// Prefix is prepended to every object key. Empty uploads at the bucket
	// root.
	Prefix string `json:"prefix"`

	// Region overrides the session's resolved region when non-empty.
	Region string `json:"region"`
}

// Runtime controls concurrency for the heavy stages.
type Runtime struct {
	// UploadConcurrency bounds parallel mirror uploads. Zero means 8.
	UploadConcurrency int `json:"upload_concurrency"`
}
