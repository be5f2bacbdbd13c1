package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ignite/constituent-reconciler/internal/reconcile"
)

// FileReader reads the three tables from local CSV files, one per workbook
// sheet.
type FileReader struct {
	cfg CSVConfig
}

// NewFileReader creates a reader over local CSV exports.
func NewFileReader(cfg CSVConfig) *FileReader {
	return &FileReader{cfg: cfg}
}

// Read loads all three tables.
func (r *FileReader) Read(ctx context.Context) (reconcile.Tables, error) {
	var tables reconcile.Tables

	err := withFile(r.cfg.ConstituentsPath, func(f io.Reader) error {
		rows, err := DecodeConstituents(f)
		tables.Constituents = rows
		return err
	})
	if err != nil {
		return tables, fmt.Errorf("read constituents: %w", err)
	}

	err = withFile(r.cfg.EmailsPath, func(f io.Reader) error {
		rows, err := DecodeEmails(f)
		tables.Emails = rows
		return err
	})
	if err != nil {
		return tables, fmt.Errorf("read emails: %w", err)
	}

	err = withFile(r.cfg.DonationsPath, func(f io.Reader) error {
		rows, err := DecodeDonations(f)
		tables.Donations = rows
		return err
	})
	if err != nil {
		return tables, fmt.Errorf("read donations: %w", err)
	}

	return tables, nil
}

func withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}

// newCSVReader configures csv decoding the way our upstream exports need:
// sloppy quoting and ragged rows are both common.
func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// DecodeConstituents parses the constituents sheet. Every non-blank cell is
// kept in the row's field map under its canonical column name; blank cells
// are treated as null and omitted, matching the spreadsheet semantics of the
// upstream export.
func DecodeConstituents(r io.Reader) ([]reconcile.ConstituentRecord, error) {
	cr := newCSVReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = canonicalColumn(constituentAliases, h)
	}

	var rows []reconcile.ConstituentRecord
	for index := 0; ; index++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", index, err)
		}

		fields := make(map[string]string)
		for i, cell := range record {
			if i >= len(columns) || columns[i] == "" || cell == "" {
				continue
			}
			fields[columns[i]] = cell
		}

		rows = append(rows, reconcile.ConstituentRecord{
			ID:     reconcile.CleanString(fields[reconcile.ColID]),
			Fields: fields,
			Index:  index,
		})
	}
	return rows, nil
}

// DecodeEmails parses the emails sheet.
func DecodeEmails(r io.Reader) ([]reconcile.EmailEntry, error) {
	rows, err := decodeNamed(r, emailAliases)
	if err != nil {
		return nil, err
	}
	entries := make([]reconcile.EmailEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, reconcile.EmailEntry{
			ID:    reconcile.CleanString(row["id"]),
			Email: row["email"],
		})
	}
	return entries, nil
}

// DecodeDonations parses the donation history sheet.
func DecodeDonations(r io.Reader) ([]reconcile.DonationTransaction, error) {
	rows, err := decodeNamed(r, donationAliases)
	if err != nil {
		return nil, err
	}
	txns := make([]reconcile.DonationTransaction, 0, len(rows))
	for i, row := range rows {
		txns = append(txns, reconcile.DonationTransaction{
			ID:     reconcile.CleanString(row["id"]),
			Status: row["status"],
			Amount: row["amount"],
			Date:   row["date"],
			Index:  i,
		})
	}
	return txns, nil
}

// decodeNamed reads a CSV into generic rows keyed by canonical column name.
func decodeNamed(r io.Reader, aliases map[string]string) ([]map[string]string, error) {
	cr := newCSVReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = canonicalColumn(aliases, h)
	}

	var rows []map[string]string
	for index := 0; ; index++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", index, err)
		}
		row := make(map[string]string)
		for i, cell := range record {
			if i >= len(columns) || columns[i] == "" || cell == "" {
				continue
			}
			row[columns[i]] = cell
		}
		rows = append(rows, row)
	}
	return rows, nil
}
