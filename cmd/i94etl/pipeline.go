// Package main wires the warehouse run end-to-end: dimension parsing, the
// three independent cleaning stages, the partitioned export, and the final
// object-storage mirror. This file keeps the CLI layer thin: stages are
// implemented in their internal packages and composed here.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"golang.org/x/sync/errgroup"

	"i94etl/internal/airport"
	"i94etl/internal/config"
	"i94etl/internal/datasource"
	"i94etl/internal/datasource/file"
	"i94etl/internal/demographics"
	"i94etl/internal/export"
	"i94etl/internal/immigration"
	"i94etl/internal/metrics"
	"i94etl/internal/mirror"
	"i94etl/internal/parser/mapping"
	"i94etl/internal/schema"
)

// Logical dataset names under the output root.
const (
	datasetCountries    = "countries"
	datasetPorts        = "ports"
	datasetAirports     = "airport_codes"
	datasetDemographics = "city_demographics"

	// The fact table is written twice, one layout per access pattern.
	datasetFactByState = "immigration_by_state"
	datasetFactByMode  = "immigration_by_mode"
)

// Partition layouts per dataset.
var (
	partitionAirports     = []string{"state"}
	partitionDemographics = []string{"state_code"}
	partitionFactByState  = []string{"year", "month", "us_state"}
	partitionFactByMode   = []string{"year", "month", "arrival_mode", "port"}
)

// Function variables used to introduce test seams. In production these point
// to real implementations; tests can override them.
var (
	readSnapshotFn = immigration.ReadSnapshot

	newMirrorFn = func(cfg config.Mirror) (*mirror.Mirror, error) {
		awsCfg := aws.NewConfig()
		if cfg.Region != "" {
			awsCfg = awsCfg.WithRegion(cfg.Region)
		}
		sess, err := session.NewSession(awsCfg)
		if err != nil {
			return nil, fmt.Errorf("aws session: %w", err)
		}
		return mirror.New(sess, cfg.Bucket, cfg.Prefix), nil
	}
)

// dimensionSet carries everything the dimension stage produces: the three
// fact-join lookups plus the two dimensions that are themselves exported as
// datasets.
type dimensionSet struct {
	joins     immigration.Dimensions
	countries []schema.DimensionEntry
	ports     []schema.PortEntry
}

// run executes one full-refresh batch: dimensions first (fast, sequential),
// then the three heavy stages concurrently, then the mirror. A failed stage
// cancels its peers and aborts the run; datasets already written stay in
// place, and rerunning the whole pipeline is the recovery path.
func run(ctx context.Context, p config.Pipeline) error {
	dims, err := loadDimensions(p)
	if err != nil {
		return err
	}

	w := export.Writer{Root: p.Output.Root}

	// The two standalone dimension datasets are small; write them up front.
	if err := stage(p.Job, "export_dimensions", func() error {
		if err := export.Write(w, datasetCountries, dims.countries, nil); err != nil {
			return err
		}
		return export.Write(w, datasetPorts, dims.ports, nil)
	}); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return stage(p.Job, "immigration", func() error {
			raw, err := readSnapshotFn(gctx, p.Immigration.Path)
			if err != nil {
				return err
			}
			facts := immigration.Transform(raw, dims.joins)
			metrics.RecordRows(p.Job, "facts", int64(len(facts)))
			log.Printf("immigration: %d fact rows", len(facts))

			if err := export.Write(w, datasetFactByState, facts, partitionFactByState); err != nil {
				return err
			}
			return export.Write(w, datasetFactByMode, facts, partitionFactByMode)
		})
	})

	g.Go(func() error {
		return stage(p.Job, "airports", func() error {
			rc, err := openInput(gctx, p.Airports.Path)
			if err != nil {
				return err
			}
			defer rc.Close()

			recs, skipped, err := airport.Normalizer{Country: p.Airports.Country}.Normalize(rc)
			if err != nil {
				return err
			}
			metrics.RecordRows(p.Job, "airport_rows", int64(len(recs)))
			log.Printf("airports: %d rows (%d skipped)", len(recs), skipped)
			return export.Write(w, datasetAirports, recs, partitionAirports)
		})
	})

	g.Go(func() error {
		return stage(p.Job, "demographics", func() error {
			rc, err := openInput(gctx, p.Demographics.Path)
			if err != nil {
				return err
			}
			defer rc.Close()

			recs, skipped, err := demographics.Normalize(rc)
			if err != nil {
				return err
			}
			metrics.RecordRows(p.Job, "demographic_rows", int64(len(recs)))
			log.Printf("demographics: %d rows (%d skipped)", len(recs), skipped)
			return export.Write(w, datasetDemographics, recs, partitionDemographics)
		})
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if !p.Mirror.Enabled {
		return nil
	}
	return stage(p.Job, "mirror", func() error {
		m, err := newMirrorFn(p.Mirror)
		if err != nil {
			return err
		}
		m.Concurrency = p.Runtime.UploadConcurrency
		n, err := m.Upload(ctx, p.Output.Root)
		if err != nil {
			return err
		}
		metrics.RecordRows(p.Job, "uploaded_files", int64(n))
		return nil
	})
}

// loadDimensions parses the five reference mapping files and builds the
// fact-join lookups. Dimension parsing is soft-fail per line but a missing
// or unreadable file aborts the run.
func loadDimensions(p config.Pipeline) (dimensionSet, error) {
	var out dimensionSet
	err := stage(p.Job, "dimensions", func() error {
		countries, err := parseMapping(p, p.Mappings.Country, mapping.DimensionCountry)
		if err != nil {
			return err
		}
		states, err := parseMapping(p, p.Mappings.State, mapping.DimensionState)
		if err != nil {
			return err
		}
		visas, err := parseMapping(p, p.Mappings.Visa, mapping.DimensionVisa)
		if err != nil {
			return err
		}
		modes, err := parseMapping(p, p.Mappings.Mode, mapping.DimensionMode)
		if err != nil {
			return err
		}
		ports, err := parseMapping(p, p.Mappings.Port, mapping.DimensionPort)
		if err != nil {
			return err
		}

		// Visa and mode are keyed numerically in the fact snapshot; reject a
		// mapping file that could never join.
		if err := mapping.ValidateNumericCodes(visas); err != nil {
			return err
		}
		if err := mapping.ValidateNumericCodes(modes); err != nil {
			return err
		}

		out = dimensionSet{
			joins: immigration.Dimensions{
				State: mapping.Lookup(states),
				Visa:  mapping.Lookup(visas),
				Mode:  mapping.Lookup(modes),
			},
			countries: countries,
			ports:     mapping.Ports(ports),
		}
		return nil
	})
	return out, err
}

// openInput opens a pipeline input through the datasource layer.
func openInput(ctx context.Context, path string) (io.ReadCloser, error) {
	var src datasource.Source = file.NewLocal(path)
	return src.Open(ctx)
}

// parseMapping reads and parses one mapping file.
func parseMapping(p config.Pipeline, mf config.MappingFile, dim mapping.Dimension) ([]schema.DimensionEntry, error) {
	lines, err := file.ReadLines(mf.Path, file.Encoding(mf.Encoding))
	if err != nil {
		return nil, err
	}
	entries, skipped := mapping.NewParser(mapping.Options{Sep: mf.Sep, Dimension: dim}).Parse(lines)
	if skipped > 0 {
		metrics.RecordRows(p.Job, "mapping_skipped", int64(skipped))
	}
	log.Printf("mapping %s: %d entries (%d skipped)", dim, len(entries), skipped)
	return entries, nil
}

// stage runs fn, records its duration and outcome, and wraps the error with
// the stage name.
func stage(job, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStage(job, name, err, time.Since(start))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
