package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/constituent-reconciler/internal/reconcile"
)

func TestDecodeConstituents(t *testing.T) {
	in := strings.Join([]string{
		"Account ID,First Name,Company,Primary Email,Entry Date,Phone",
		"1,Jane,,jane@example.org,2021-01-01,555",
		"2,,Acme Inc,,,",
	}, "\n")

	rows, err := DecodeConstituents(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	jane := rows[0]
	assert.Equal(t, "1", jane.ID)
	assert.Equal(t, 0, jane.Index)
	assert.Equal(t, "Jane", jane.Fields[reconcile.ColFirstName])
	assert.Equal(t, "jane@example.org", jane.Fields[reconcile.ColPrimaryEmail])
	// Unrecognized headers are kept under their normalized names so they
	// count toward completeness.
	assert.Equal(t, "555", jane.Fields["phone"])
	// Blank cells read as null: the key is absent, not empty.
	_, hasCompany := jane.Fields[reconcile.ColCompanyName]
	assert.False(t, hasCompany)

	assert.Equal(t, 5, reconcile.CompletenessScore(jane.Fields))

	acme := rows[1]
	assert.Equal(t, "Acme Inc", acme.Fields[reconcile.ColCompanyName])
	assert.Equal(t, 2, reconcile.CompletenessScore(acme.Fields))
}

func TestDecodeConstituentsHeaderAliases(t *testing.T) {
	in := "Constituent ID,FirstName,Organization\n9,Ann,Big Org\n"
	rows, err := DecodeConstituents(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "9", rows[0].ID)
	assert.Equal(t, "Ann", rows[0].Fields[reconcile.ColFirstName])
	assert.Equal(t, "Big Org", rows[0].Fields[reconcile.ColCompanyName])
}

func TestDecodeConstituentsEmptyFile(t *testing.T) {
	rows, err := DecodeConstituents(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecodeEmails(t *testing.T) {
	in := "Account ID,Email\n1,a@x.com\n1,b@x.com\n2,c@x.com\n"
	entries, err := DecodeEmails(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, reconcile.EmailEntry{ID: "1", Email: "a@x.com"}, entries[0])
	assert.Equal(t, reconcile.EmailEntry{ID: "2", Email: "c@x.com"}, entries[2])
}

func TestDecodeDonations(t *testing.T) {
	in := "Account ID,Status,Amount,Date\n1,Paid,$100.00,2021-05-05\n1,Pending,50,2021-06-06\n"
	txns, err := DecodeDonations(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "Paid", txns[0].Status)
	assert.Equal(t, "$100.00", txns[0].Amount)
	assert.Equal(t, 1, txns[1].Index)
}

func TestFileReader(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	reader := NewFileReader(CSVConfig{
		ConstituentsPath: write("constituents.csv", "Account ID,First Name\n1,Jane\n"),
		EmailsPath:       write("emails.csv", "Account ID,Email\n1,jane@x.com\n"),
		DonationsPath:    write("donations.csv", "Account ID,Status,Amount,Date\n1,Paid,10,2021-01-01\n"),
	})

	tables, err := reader.Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables.Constituents, 1)
	assert.Len(t, tables.Emails, 1)
	assert.Len(t, tables.Donations, 1)
}

func TestFileReaderMissingFile(t *testing.T) {
	reader := NewFileReader(CSVConfig{
		ConstituentsPath: filepath.Join(t.TempDir(), "nope.csv"),
	})
	_, err := reader.Read(context.Background())
	require.Error(t, err)
}
