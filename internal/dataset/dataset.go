// Package dataset loads the retailer table that gets embedded in every prompt.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultPath is where the dataset is looked up when none is configured.
const DefaultPath = "data.csv"

// ErrEmpty is returned for a file with no header row.
var ErrEmpty = errors.New("no columns to parse from file")

// LoadError describes why the dataset could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Dataset is an immutable, parsed copy of the CSV file.
type Dataset struct {
	path   string
	header []string
	rows   [][]string
	text   string
}

// Load reads and validates the CSV file at path. Every row must have the
// same number of fields as the header.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	ds.path = path
	return ds, nil
}

// Read parses CSV from r.
func Read(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	header := records[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	ds := &Dataset{
		header: header,
		rows:   records[1:],
	}
	ds.text, err = ds.encode()
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func (d *Dataset) encode() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(d.header); err != nil {
		return "", fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := w.WriteAll(d.rows); err != nil {
		return "", fmt.Errorf("failed to encode dataset: %w", err)
	}
	return buf.String(), nil
}

// Path returns the file the dataset was loaded from, if any.
func (d *Dataset) Path() string { return d.path }

// Columns returns a copy of the header row.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.header...)
}

// Len returns the number of data rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Text returns the whole table serialised as CSV, ready to embed in a prompt.
func (d *Dataset) Text() string { return d.text }
