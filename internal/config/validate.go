// Package config provides the configuration model and helpers for warehouse
// runs.
//
// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of
// issues (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block
	// execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be
	// surfaced to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "mappings.country.path").
// Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; it returns a slice of Issue values and lets the
// caller decide whether warnings block the run.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels logs and metrics for the run",
		})
	}

	issues = append(issues, validateMappings(p.Mappings)...)

	if strings.TrimSpace(p.Airports.Path) == "" {
		issues = append(issues, requiredPath("airports.path"))
	}
	if strings.TrimSpace(p.Demographics.Path) == "" {
		issues = append(issues, requiredPath("demographics.path"))
	}
	if strings.TrimSpace(p.Immigration.Path) == "" {
		issues = append(issues, requiredPath("immigration.path"))
	}
	if strings.TrimSpace(p.Output.Root) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.root",
			Message:  "output root directory is required",
		})
	}

	issues = append(issues, validateMirror(p.Mirror)...)

	if p.Runtime.UploadConcurrency < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "runtime.upload_concurrency",
			Message:  "must be >= 0 (0 selects the default)",
		})
	}

	return issues
}

// validateMappings validates the five reference-dimension inputs.
func validateMappings(m Mappings) []Issue {
	var issues []Issue
	files := []struct {
		name string
		f    MappingFile
	}{
		{"country", m.Country},
		{"state", m.State},
		{"visa", m.Visa},
		{"mode", m.Mode},
		{"port", m.Port},
	}
	for _, mf := range files {
		base := "mappings." + mf.name
		if strings.TrimSpace(mf.f.Path) == "" {
			issues = append(issues, requiredPath(base+".path"))
			continue
		}
		if mf.f.Sep == "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     base + ".sep",
				Message:  `separator not set; defaulting to "="`,
			})
		}
		switch mf.f.Encoding {
		case "", "utf-8", "windows-1252":
		default:
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     base + ".encoding",
				Message:  fmt.Sprintf("unsupported encoding %q (want utf-8 or windows-1252)", mf.f.Encoding),
			})
		}
	}
	return issues
}

// validateMirror validates the object-storage upload configuration.
func validateMirror(m Mirror) []Issue {
	var issues []Issue
	if !m.Enabled {
		return issues
	}
	if strings.TrimSpace(m.Bucket) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "mirror.bucket",
			Message:  "bucket is required when the mirror is enabled",
		})
	}
	if strings.HasPrefix(m.Prefix, "/") {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "mirror.prefix",
			Message:  "prefix starts with '/'; object keys will carry a leading empty segment",
		})
	}
	return issues
}

func requiredPath(path string) Issue {
	return Issue{
		Severity: SeverityError,
		Path:     path,
		Message:  "input path is required",
	}
}
