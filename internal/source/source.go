// Package source reads the three input tables — constituents, emails,
// donation history — from CSV files (local or S3) or a SQL database. Readers
// preserve the null/empty distinction: a null cell never appears in a row's
// field map, a blank cell appears as the empty string.
package source

import (
	"context"

	"github.com/ignite/constituent-reconciler/internal/reconcile"
)

// Reader supplies the three source tables for one pipeline run.
type Reader interface {
	Read(ctx context.Context) (reconcile.Tables, error)
}

// Config selects and configures a reader.
type Config struct {
	// Kind is one of "csv", "s3", "postgres", "snowflake".
	Kind string `yaml:"kind"`

	CSV       CSVConfig       `yaml:"csv"`
	S3        S3Config        `yaml:"s3"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Snowflake SnowflakeConfig `yaml:"snowflake"`
}

// CSVConfig points at the three exported sheet files.
type CSVConfig struct {
	ConstituentsPath string `yaml:"constituents_path"`
	EmailsPath       string `yaml:"emails_path"`
	DonationsPath    string `yaml:"donations_path"`
}

// S3Config points at the same three CSVs in a bucket.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AWSProfile      string `yaml:"aws_profile"`
	ConstituentsKey string `yaml:"constituents_key"`
	EmailsKey       string `yaml:"emails_key"`
	DonationsKey    string `yaml:"donations_key"`
}

// PostgresConfig holds the Postgres DSN and table names.
type PostgresConfig struct {
	DSN    string     `yaml:"dsn"`
	Tables TableNames `yaml:"tables"`
}

// SnowflakeConfig holds Snowflake connection settings and table names.
type SnowflakeConfig struct {
	User      string     `yaml:"user"`
	Password  string     `yaml:"password"`
	Account   string     `yaml:"account"`
	Database  string     `yaml:"database"`
	Schema    string     `yaml:"schema"`
	Warehouse string     `yaml:"warehouse"`
	Tables    TableNames `yaml:"tables"`
}

// TableNames names the three source tables in a SQL backend.
type TableNames struct {
	Constituents string `yaml:"constituents"`
	Emails       string `yaml:"emails"`
	Donations    string `yaml:"donations"`
}

func (t TableNames) withDefaults() TableNames {
	if t.Constituents == "" {
		t.Constituents = "constituents"
	}
	if t.Emails == "" {
		t.Emails = "constituent_emails"
	}
	if t.Donations == "" {
		t.Donations = "donation_history"
	}
	return t
}
