package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"                  // Postgres driver
	_ "github.com/snowflakedb/gosnowflake" // Snowflake driver

	"github.com/ignite/constituent-reconciler/internal/reconcile"
)

// SQLReader reads the three tables from any database/sql backend. Columns
// are discovered from the result set and mapped through the same alias
// tables as the CSV readers, so the warehouse schema does not have to match
// the canonical names exactly. NULL cells stay absent from the field maps;
// empty strings stay present.
type SQLReader struct {
	db     *sql.DB
	tables TableNames
}

// NewSQLReader wraps an open database handle.
func NewSQLReader(db *sql.DB, tables TableNames) *SQLReader {
	return &SQLReader{db: db, tables: tables.withDefaults()}
}

// NewPostgresReader opens a Postgres connection and wraps it.
func NewPostgresReader(cfg PostgresConfig) (*SQLReader, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return NewSQLReader(db, cfg.Tables), nil
}

// NewSnowflakeReader opens a Snowflake connection and wraps it.
// DSN format: user:password@account/database/schema?warehouse=xxx
func NewSnowflakeReader(cfg SnowflakeConfig) (*SQLReader, error) {
	dsn := fmt.Sprintf("%s:%s@%s/%s/%s",
		cfg.User,
		cfg.Password,
		cfg.Account,
		cfg.Database,
		cfg.Schema,
	)
	if cfg.Warehouse != "" {
		dsn += "?warehouse=" + cfg.Warehouse
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("open snowflake: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return NewSQLReader(db, cfg.Tables), nil
}

// Close closes the underlying database handle.
func (r *SQLReader) Close() error { return r.db.Close() }

// Ping tests the database connection.
func (r *SQLReader) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

// Read loads all three tables.
func (r *SQLReader) Read(ctx context.Context) (reconcile.Tables, error) {
	var tables reconcile.Tables

	constituentRows, err := r.queryRows(ctx, r.tables.Constituents, constituentAliases)
	if err != nil {
		return tables, fmt.Errorf("read constituents: %w", err)
	}
	for i, fields := range constituentRows {
		tables.Constituents = append(tables.Constituents, reconcile.ConstituentRecord{
			ID:     reconcile.CleanString(fields[reconcile.ColID]),
			Fields: fields,
			Index:  i,
		})
	}

	emailRows, err := r.queryRows(ctx, r.tables.Emails, emailAliases)
	if err != nil {
		return tables, fmt.Errorf("read emails: %w", err)
	}
	for _, row := range emailRows {
		tables.Emails = append(tables.Emails, reconcile.EmailEntry{
			ID:    reconcile.CleanString(row["id"]),
			Email: row["email"],
		})
	}

	donationRows, err := r.queryRows(ctx, r.tables.Donations, donationAliases)
	if err != nil {
		return tables, fmt.Errorf("read donations: %w", err)
	}
	for i, row := range donationRows {
		tables.Donations = append(tables.Donations, reconcile.DonationTransaction{
			ID:     reconcile.CleanString(row["id"]),
			Status: row["status"],
			Amount: row["amount"],
			Date:   row["date"],
			Index:  i,
		})
	}

	return tables, nil
}

// queryRows selects everything from a table and maps each row into canonical
// column names. All values scan as nullable text; drivers render numbers and
// dates to strings, and the core's soft parsers take it from there.
func (r *SQLReader) queryRows(ctx context.Context, table string, aliases map[string]string) ([]map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}

	columns := make([]string, len(names))
	for i, n := range names {
		columns[i] = canonicalColumn(aliases, n)
	}

	var out []map[string]string
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}

		fields := make(map[string]string)
		for i, v := range values {
			if !v.Valid || columns[i] == "" {
				continue
			}
			fields[columns[i]] = v.String
		}
		out = append(out, fields)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}
