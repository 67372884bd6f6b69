// Package source loads the race-results CSV into an immutable snapshot.
//
// Loading is all-or-nothing: either the full row set parses and a fresh
// snapshot comes back, or an error does and the caller keeps whatever
// snapshot it already had.
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/okian/paceline/internal/domain/model"
	"github.com/okian/paceline/internal/domain/normalize"
)

const defaultFetchTimeout = 30 * time.Second

// Loader reads rows from a local file or an HTTP URL.
type Loader struct {
	path      string
	url       string
	client    *http.Client
	yearPivot int
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithPath sets the local CSV path.
func WithPath(path string) Option {
	return func(l *Loader) {
		l.path = path
	}
}

// WithURL sets an HTTP URL to fetch the CSV from; it takes precedence over
// the local path.
func WithURL(url string) Option {
	return func(l *Loader) {
		l.url = url
	}
}

// WithHTTPClient overrides the HTTP client used for URL loads.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithYearPivot sets the two-digit-year pivot used while normalizing rows.
func WithYearPivot(pivot int) Option {
	return func(l *Loader) {
		l.yearPivot = pivot
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		client:    &http.Client{Timeout: defaultFetchTimeout},
		yearPivot: normalize.DefaultYearPivot,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads, parses and normalizes the full row set. Any transport or CSV
// error aborts the whole load and wraps ErrLoad.
func (l *Loader) Load(ctx context.Context) (*model.Snapshot, error) {
	rc, err := l.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer func() { _ = rc.Close() }()

	headers, raws, err := parseCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return model.NewSnapshot(headers, raws, model.WithYearPivot(l.yearPivot)), nil
}

func (l *Loader) open(ctx context.Context) (io.ReadCloser, error) {
	if l.url != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("%w: HTTP %d", ErrBadStatus, resp.StatusCode)
		}
		return resp.Body, nil
	}
	if l.path == "" {
		return nil, ErrNoSource
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// parseCSV reads the header record and then maps every data record onto it.
// Fully empty lines are skipped; a field-count mismatch fails the load.
func parseCSV(r io.Reader) ([]string, []map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var raws []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", len(raws)+2, err)
		}
		if empty(record) {
			continue
		}
		if len(record) != len(headers) {
			return nil, nil, fmt.Errorf("%w: row %d has %d fields, want %d", ErrMalformed, len(raws)+2, len(record), len(headers))
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			row[h] = record[i]
		}
		raws = append(raws, row)
	}
	return headers, raws, nil
}

func empty(record []string) bool {
	for _, f := range record {
		if f != "" {
			return false
		}
	}
	return true
}
