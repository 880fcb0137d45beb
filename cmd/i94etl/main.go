package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"i94etl/internal/config"
	"i94etl/internal/metrics"
	"i94etl/internal/metrics/prompush"
)

// main is the entry point for the warehouse ETL binary. It loads the run
// config, optionally initializes a metrics backend, and executes the batch
// run.
func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
		skipMirror        bool
	)

	flag.StringVar(&cfgPath, "config", "configs/run.json", "run config JSON path")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (pushgateway, none; defaults to env METRICS_BACKEND, then none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.BoolVar(&skipMirror, "skip-mirror", false, "skip the object-storage upload even when configured")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	// Credentials/config from a local .env, if present. Missing file is fine:
	// the AWS session falls back to the ambient environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("env: %v", err)
	}

	f, err := os.Open(cfgPath)
	if err != nil {
		fatalf("open config: %v", err)
	}
	defer f.Close()

	var p config.Pipeline
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		fatalf("decode config: %v", err)
	}

	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	backendName := resolveMetricsBackend(metricsBackendFlg, os.Getenv("METRICS_BACKEND"))
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend(p.Job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v backend=%v job=%v", gwURL, backendName, p.Job)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "none":
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	if skipMirror {
		p.Mirror.Enabled = false
	}

	ctx := context.Background()
	start := time.Now()

	if *verbose {
		log.Printf("run: job=%s facts=%s output=%s mirror=%v",
			p.Job, p.Immigration.Path, p.Output.Root, p.Mirror.Enabled)
	}

	if err := run(ctx, p); err != nil {
		log.Fatalf("%v", err)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

// resolveMetricsBackend picks the metrics backend name: an explicit flag
// value wins, then the environment, then "none".
func resolveMetricsBackend(flagVal, envVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if envVal != "" {
		return envVal
	}
	return "none"
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
