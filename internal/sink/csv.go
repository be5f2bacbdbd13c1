// Package sink persists pipeline output as flat CSV tables, locally and
// optionally to S3.
package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ignite/constituent-reconciler/internal/reconcile"
)

// Output file names within the configured directory.
const (
	ConstituentsFile = "constituents.csv"
	TagCountsFile    = "tag_counts.csv"
)

// constituentHeader is the fixed column set of the constituents output.
var constituentHeader = []string{
	"Account ID",
	"Type",
	"First Name",
	"Last Name",
	"Company Name",
	"Created At",
	"Email 1",
	"Email 2",
	"Title",
	"Tags",
	"Background Information",
	"Lifetime Donation Amount",
	"Most Recent Donation Amount",
	"Most Recent Donation Date",
}

var tagCountHeader = []string{"Tag Name", "Count"}

// Config holds output settings.
type Config struct {
	Dir string   `yaml:"dir"`
	S3  S3Config `yaml:"s3"`
}

// CSVWriter writes the two output tables into a directory, preserving the
// row order the pipeline produced.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates a writer rooted at dir ("." when empty).
func NewCSVWriter(dir string) *CSVWriter {
	if dir == "" {
		dir = "."
	}
	return &CSVWriter{dir: dir}
}

// Write persists both output tables.
func (w *CSVWriter) Write(ctx context.Context, result reconcile.Result) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeCSV(filepath.Join(w.dir, ConstituentsFile), constituentHeader, constituentRows(result.Constituents)); err != nil {
		return fmt.Errorf("write constituents: %w", err)
	}
	if err := writeCSV(filepath.Join(w.dir, TagCountsFile), tagCountHeader, tagCountRows(result.TagCounts)); err != nil {
		return fmt.Errorf("write tag counts: %w", err)
	}
	return nil
}

func constituentRows(cs []reconcile.OutputConstituent) [][]string {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []string{
			c.ID,
			string(c.Type),
			c.FirstName,
			c.LastName,
			c.CompanyName,
			c.CreatedAt,
			c.Email1,
			c.Email2,
			c.Title,
			c.Tags,
			c.Background,
			c.LifetimeAmount,
			c.LatestAmount,
			c.LatestDate,
		})
	}
	return rows
}

func tagCountRows(ts []reconcile.TagCountRow) [][]string {
	rows := make([][]string, 0, len(ts))
	for _, t := range ts {
		rows = append(rows, []string{t.Tag, fmt.Sprintf("%d", t.Count)})
	}
	return rows
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(f)
	cw.Write(header)
	for _, row := range rows {
		cw.Write(row)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
