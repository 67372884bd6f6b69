package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/okian/paceline/internal/testdata"
	"github.com/okian/paceline/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumRows = 5000
)

func main() {
	var (
		numRows = flag.Int("rows", defaultNumRows, "Number of result rows to generate")
		output  = flag.String("output", "results.csv", "Output CSV path (- for stdout)")
		events  = flag.String("events", "", "Comma-separated event names (default: a standard program)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx := context.Background()
	cfg := testdata.Config{NumRows: *numRows}
	if *events != "" {
		for _, e := range strings.Split(*events, ",") {
			if trimmed := strings.TrimSpace(e); trimmed != "" {
				cfg.Events = append(cfg.Events, trimmed)
			}
		}
	}

	rows := testdata.Generate(ctx, cfg)

	out := os.Stdout
	if *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			os.Stderr.WriteString("failed to create output: " + err.Error() + "\n")
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := testdata.WriteCSV(out, rows); err != nil {
		os.Stderr.WriteString("failed to write CSV: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Get().Info(ctx, "dataset written",
		logger.Int("rows", len(rows)),
		logger.String("output", *output),
	)
}
