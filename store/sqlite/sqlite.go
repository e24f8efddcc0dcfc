/*
Package sqlite provides the SQLite-backed catalog of saved inputs.

PURPOSE:
  The CLI and HTTP API can run calculations against saved inputs instead of
  inline arrays: `fincalc xirr --series gd30`. This package stores those
  inputs — named cashflow series (with optional value dates and a day-count
  basis) and named bond contracts. Only inputs live here; calculation
  results are never persisted.

KEY TABLES:
  series:        Named series header (basis, created_at)
  series_points: Ordered points of a series (amount, optional value date)
  bonds:         Named bond terms

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened in WAL mode so
  readers don't block each other.

USAGE:
  catalog, err := sqlite.New("./fincalc.db")   // ":memory:" for tests
  if err != nil {
      log.Fatal(err)
  }
  defer catalog.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool with versioned migrations.

SEE ALSO:
  - factory: The Series shape stored and returned here
  - api/handlers.go, cmd/fincalc: The two consumers
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ShaysReality/fincalc/bond"
	"github.com/ShaysReality/fincalc/daycount"
	"github.com/ShaysReality/fincalc/factory"
)

var (
	// ErrSeriesNotFound is returned when a named series is not in the catalog.
	ErrSeriesNotFound = errors.New("series not found")

	// ErrBondNotFound is returned when a named bond is not in the catalog.
	ErrBondNotFound = errors.New("bond not found")
)

// Catalog stores named calculation inputs in SQLite.
type Catalog struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (and migrates) the catalog at the given path.
// Use ":memory:" for an in-memory catalog.
func New(dbPath string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return c, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// migrate creates the catalog schema.
func (c *Catalog) migrate() error {
	schema := `
	-- Named cashflow series
	CREATE TABLE IF NOT EXISTS series (
		name TEXT PRIMARY KEY,
		basis TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Ordered points of a series; value_date is NULL for undated series
	CREATE TABLE IF NOT EXISTS series_points (
		series_name TEXT NOT NULL REFERENCES series(name) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		amount REAL NOT NULL,
		value_date TEXT,
		PRIMARY KEY (series_name, idx)
	);

	CREATE INDEX IF NOT EXISTS idx_series_points_name
		ON series_points(series_name, idx);

	-- Named bond contracts
	CREATE TABLE IF NOT EXISTS bonds (
		name TEXT PRIMARY KEY,
		face REAL NOT NULL,
		coupon_rate REAL NOT NULL,
		years REAL NOT NULL,
		frequency INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := c.db.Exec(schema)
	return err
}

// =============================================================================
// SERIES
// =============================================================================

// SaveSeries inserts or replaces a named series with all its points.
func (c *Catalog) SaveSeries(ctx context.Context, s factory.Series) error {
	if s.Name == "" {
		return errors.New("series name is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save series: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO series (name, basis, created_at) VALUES (?, ?, ?)`,
		s.Name, string(s.Basis), now); err != nil {
		return fmt.Errorf("save series %q: %w", s.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM series_points WHERE series_name = ?`, s.Name); err != nil {
		return fmt.Errorf("clear series points %q: %w", s.Name, err)
	}

	for i, amount := range s.Values {
		var valueDate any
		if s.Dated() {
			valueDate = s.Dates[i].Format(daycount.DateLayout)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO series_points (series_name, idx, amount, value_date) VALUES (?, ?, ?, ?)`,
			s.Name, i, amount, valueDate); err != nil {
			return fmt.Errorf("save series point %q[%d]: %w", s.Name, i, err)
		}
	}

	return tx.Commit()
}

// GetSeries loads a named series with its points in order.
func (c *Catalog) GetSeries(ctx context.Context, name string) (factory.Series, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var basisTag string
	err := c.db.QueryRowContext(ctx,
		`SELECT basis FROM series WHERE name = ?`, name).Scan(&basisTag)
	if errors.Is(err, sql.ErrNoRows) {
		return factory.Series{}, fmt.Errorf("%w: %q", ErrSeriesNotFound, name)
	}
	if err != nil {
		return factory.Series{}, fmt.Errorf("get series %q: %w", name, err)
	}

	basis, err := daycount.ParseBasis(basisTag)
	if err != nil {
		return factory.Series{}, fmt.Errorf("get series %q: %w", name, err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT amount, value_date FROM series_points WHERE series_name = ? ORDER BY idx`, name)
	if err != nil {
		return factory.Series{}, fmt.Errorf("get series points %q: %w", name, err)
	}
	defer rows.Close()

	s := factory.Series{Name: name, Basis: basis}
	for rows.Next() {
		var amount float64
		var valueDate sql.NullString
		if err := rows.Scan(&amount, &valueDate); err != nil {
			return factory.Series{}, fmt.Errorf("scan series point: %w", err)
		}
		s.Values = append(s.Values, amount)
		if valueDate.Valid {
			d, err := daycount.ParseDate(valueDate.String)
			if err != nil {
				return factory.Series{}, fmt.Errorf("series %q: %w", name, err)
			}
			s.Dates = append(s.Dates, d)
		}
	}
	if err := rows.Err(); err != nil {
		return factory.Series{}, fmt.Errorf("get series points %q: %w", name, err)
	}
	return s, nil
}

// ListSeries returns the catalog's series names in lexical order.
func (c *Catalog) ListSeries(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, err := c.db.QueryContext(ctx, `SELECT name FROM series ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan series name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteSeries removes a named series and its points.
func (c *Catalog) DeleteSeries(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.db.ExecContext(ctx, `DELETE FROM series WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete series %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrSeriesNotFound, name)
	}
	return nil
}

// =============================================================================
// BONDS
// =============================================================================

// SaveBond inserts or replaces a named bond contract.
func (c *Catalog) SaveBond(ctx context.Context, name string, terms bond.Terms) error {
	if name == "" {
		return errors.New("bond name is required")
	}
	if err := terms.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO bonds (name, face, coupon_rate, years, frequency, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, terms.Face, terms.CouponRate, terms.Years, terms.Frequency, now)
	if err != nil {
		return fmt.Errorf("save bond %q: %w", name, err)
	}
	return nil
}

// GetBond loads a named bond contract.
func (c *Catalog) GetBond(ctx context.Context, name string) (bond.Terms, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var terms bond.Terms
	err := c.db.QueryRowContext(ctx,
		`SELECT face, coupon_rate, years, frequency FROM bonds WHERE name = ?`, name).
		Scan(&terms.Face, &terms.CouponRate, &terms.Years, &terms.Frequency)
	if errors.Is(err, sql.ErrNoRows) {
		return bond.Terms{}, fmt.Errorf("%w: %q", ErrBondNotFound, name)
	}
	if err != nil {
		return bond.Terms{}, fmt.Errorf("get bond %q: %w", name, err)
	}
	return terms, nil
}

// ListBonds returns the catalog's bond names in lexical order.
func (c *Catalog) ListBonds(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, err := c.db.QueryContext(ctx, `SELECT name FROM bonds ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list bonds: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan bond name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
