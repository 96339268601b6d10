// Package store loads the productivity log into SQLite for ad hoc queries.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/didit/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// DefaultQuery is the per-tier breakdown shown by `didit sql` without arguments.
const DefaultQuery = `SELECT tier, COUNT(*) AS tasks, SUM(score) AS points
FROM entries
GROUP BY tier
ORDER BY points DESC, tier ASC`

// ErrNotReadOnly is returned for statements other than SELECT or WITH queries.
var ErrNotReadOnly = errors.New("only read queries are allowed")

// Store is an in-memory SQLite database holding one table of log entries.
// The log file stays the source of truth; the database lives for one command.
type Store struct {
	db *sql.DB
}

// Result is a query result rendered as text cells.
type Result struct {
	Columns []string
	Rows    [][]string
}

// TierTotal is one row of the per-tier breakdown.
type TierTotal struct {
	Tier   string
	Tasks  int
	Points int
}

// Open creates an empty in-memory database with the entries table.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE entries (
			id INTEGER PRIMARY KEY,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			minutes INTEGER NOT NULL,
			tier TEXT NOT NULL,
			score INTEGER NOT NULL,
			glyph TEXT NOT NULL,
			source TEXT NOT NULL
		);`,
		`CREATE INDEX idx_entries_date ON entries(date, minutes);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load inserts entries in one transaction, keeping file order in the id column.
func (s *Store) Load(ctx context.Context, entries []model.Entry) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (date, time, minutes, tier, score, glyph, source) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, e := range entries {
		if _, err = stmt.ExecContext(ctx, e.Date, e.Time, e.Minutes(), e.Tier, e.Score, e.Glyph, e.Schema.String()); err != nil {
			return fmt.Errorf("failed to load entry %s %s: %w", e.Date, e.Time, err)
		}
	}
	return tx.Commit()
}

// Query runs a read query and returns every row as text.
func (s *Store) Query(ctx context.Context, query string) (Result, error) {
	if !isReadQuery(query) {
		return Result{}, ErrNotReadOnly
	}
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	cols, err := rows.Columns()
	if err != nil {
		return Result{}, err
	}
	result := Result{Columns: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return Result{}, err
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return Result{}, err
	}
	return result, nil
}

// TierBreakdown returns the default query as typed rows.
func (s *Store) TierBreakdown(ctx context.Context) ([]TierTotal, error) {
	rows, err := s.db.QueryContext(ctx, DefaultQuery)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []TierTotal
	for rows.Next() {
		var tt TierTotal
		if err := rows.Scan(&tt.Tier, &tt.Tasks, &tt.Points); err != nil {
			return nil, err
		}
		result = append(result, tt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func isReadQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if strings.Contains(strings.TrimRight(q, "; \n\t"), ";") {
		return false
	}
	return strings.HasPrefix(q, "select") || strings.HasPrefix(q, "with")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
