// Package store loads the prepared tables into a SQL database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"kastelo.dev/resultados"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to a postgres or sqlite database.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Replace drops table if it exists, recreates it from the frame's columns
// and loads every row, all in one transaction.
func (s *Store) Replace(ctx context.Context, table string, f resultados.Frame) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+pq.QuoteIdentifier(table)); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, createTable(table, f.Columns())); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}

	if s.driver == DriverPostgres {
		err = copyRows(ctx, tx, table, f)
	} else {
		err = insertRows(ctx, tx, table, f)
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	return tx.Commit()
}

func createTable(table string, cols []resultados.Column) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = pq.QuoteIdentifier(c.Name) + " " + sqlType(c.Kind)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", pq.QuoteIdentifier(table), strings.Join(defs, ", "))
}

func sqlType(k resultados.Kind) string {
	switch k {
	case resultados.Int8:
		return "SMALLINT"
	case resultados.Number:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

func columnNames(f resultados.Frame) []string {
	cols := f.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// args converts a frame row to driver values.
func args(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		if n, ok := v.(int8); ok {
			out[i] = int64(n)
			continue
		}
		out[i] = v
	}
	return out
}

func copyRows(ctx context.Context, tx *sql.Tx, table string, f resultados.Frame) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columnNames(f)...))
	if err != nil {
		return err
	}
	for i := 0; i < f.Len(); i++ {
		if _, err := stmt.ExecContext(ctx, args(f.Row(i))...); err != nil {
			stmt.Close()
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return err
	}
	return stmt.Close()
}

func insertRows(ctx context.Context, tx *sql.Tx, table string, f resultados.Frame) error {
	names := columnNames(f)
	quoted := make([]string, len(names))
	marks := make([]string, len(names))
	for i, n := range names {
		quoted[i] = pq.QuoteIdentifier(n)
		marks[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(marks, ", "))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := 0; i < f.Len(); i++ {
		if _, err := stmt.ExecContext(ctx, args(f.Row(i))...); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}
