// Package sqlstore reads and writes the catalog to a SQL database.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"github.com/satishbabariya/forte-go/catalog"
)

// TableName is the table holding the catalog.
const TableName = "set_classes"

// Store is a catalog table in a SQL database.
type Store struct {
	db       *sql.DB
	provider string
}

// Open connects to a database. provider is one of postgresql, mysql or sqlite.
func Open(provider, dsn string) (*Store, error) {
	driverName := DriverName(provider)
	if driverName == "" {
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, provider: provider}, nil
}

// New wraps an existing connection.
func New(provider string, db *sql.DB) (*Store, error) {
	if DriverName(provider) == "" {
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
	return &Store{db: db, provider: provider}, nil
}

// DriverName maps provider names to Go database driver names
func DriverName(provider string) string {
	switch provider {
	case "postgresql", "postgres":
		return "postgres"
	case "mysql":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return ""
	}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) createTableSQL() string {
	switch DriverName(s.provider) {
	case "mysql":
		return `
			CREATE TABLE IF NOT EXISTS set_classes (
				position INT NOT NULL PRIMARY KEY,
				number VARCHAR(16) NOT NULL UNIQUE,
				prime_form VARCHAR(32) NOT NULL,
				vec VARCHAR(16) NOT NULL,
				z VARCHAR(16) NULL,
				complement VARCHAR(16) NULL,
				inversion VARCHAR(16) NULL
			)
		`
	default:
		return `
			CREATE TABLE IF NOT EXISTS set_classes (
				position INTEGER NOT NULL PRIMARY KEY,
				number TEXT NOT NULL UNIQUE,
				prime_form TEXT NOT NULL,
				vec TEXT NOT NULL,
				z TEXT,
				complement TEXT,
				inversion TEXT
			)
		`
	}
}

// placeholders returns n bind parameters in the provider's style.
func (s *Store) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		if DriverName(s.provider) == "postgres" {
			parts[i] = fmt.Sprintf("$%d", i+1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// Save replaces the stored catalog with table in a single transaction.
func (s *Store) Save(ctx context.Context, table *catalog.Table) (err error) {
	if _, err := s.db.ExecContext(ctx, s.createTableSQL()); err != nil {
		return fmt.Errorf("failed to create %s: %w", TableName, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+TableName); err != nil {
		return fmt.Errorf("failed to clear %s: %w", TableName, err)
	}

	insert := fmt.Sprintf(
		"INSERT INTO %s (position, number, prime_form, vec, z, complement, inversion) VALUES (%s)",
		TableName, s.placeholders(7))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < table.Len(); i++ {
		r := table.At(i)
		_, err = stmt.ExecContext(ctx, i, r.Number, r.PrimeForm.String(), r.Vec.String(),
			nullString(r.Z), nullString(r.Complement), nullString(r.Inversion))
		if err != nil {
			return fmt.Errorf("failed to insert %s: %w", r.Number, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Load reads the stored catalog and validates it.
func (s *Store) Load(ctx context.Context) (*catalog.Table, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT number, prime_form, vec, z, complement, inversion FROM "+TableName+" ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", TableName, err)
	}
	defer rows.Close()

	var records []catalog.Record
	for rows.Next() {
		var (
			r                    catalog.Record
			primeForm, vec       string
			z, complement, inver sql.NullString
		)
		if err := rows.Scan(&r.Number, &primeForm, &vec, &z, &complement, &inver); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if r.PrimeForm, err = catalog.ParsePrimeForm(primeForm); err != nil {
			return nil, fmt.Errorf("%s: %w", r.Number, err)
		}
		if r.Vec, err = catalog.ParseIntervalVector(vec); err != nil {
			return nil, fmt.Errorf("%s: %w", r.Number, err)
		}
		r.Z = stringPtr(z)
		r.Complement = stringPtr(complement)
		r.Inversion = stringPtr(inver)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return catalog.Build(records)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return catalog.StrPtr(ns.String)
}
