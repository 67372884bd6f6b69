package main

import (
	"context"
	"encoding/csv"
	"flag"
	"os"

	"github.com/okian/paceline/internal/domain/agefix"
	"github.com/okian/paceline/internal/domain/normalize"
	"github.com/okian/paceline/pkg/logger"
)

func main() {
	var (
		input  = flag.String("input", "results.csv", "Input CSV path")
		output = flag.String("output", "", "Output CSV path (default: overwrite input)")
		pivot  = flag.Int("pivot", normalize.DefaultYearPivot, "Two-digit-year pivot")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	ctx := context.Background()
	log := logger.Get()

	headers, rows, err := readCSV(*input)
	if err != nil {
		os.Stderr.WriteString("failed to read input: " + err.Error() + "\n")
		os.Exit(1)
	}

	corrections := agefix.Apply(rows, *pivot)
	for _, c := range corrections {
		log.Info(ctx, "inferred age",
			logger.Int("row", c.RowIndex),
			logger.String("name", c.Name),
			logger.Int("inferred", c.Inferred),
			logger.Int("refAge", c.RefAge),
			logger.String("refDate", normalize.FormatDate(c.RefDate)),
			logger.Int("yearDiff", c.YearDiff),
		)
	}

	dest := *output
	if dest == "" {
		dest = *input
	}
	if err := writeCSV(dest, headers, rows); err != nil {
		os.Stderr.WriteString("failed to write output: " + err.Error() + "\n")
		os.Exit(1)
	}

	log.Info(ctx, "age fix complete",
		logger.Int("rows", len(rows)),
		logger.Int("fixed", len(corrections)),
		logger.String("output", dest),
	)
}

// readCSV loads the file into header-keyed row maps, preserving column order.
func readCSV(path string) ([]string, []map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

func writeCSV(path string, headers []string, rows []map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(headers))
		for i, h := range headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
