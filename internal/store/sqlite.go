package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	"DivergenceSentinel/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps one row per (symbol, timestamp) close.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the HTTP server read while the fetch job writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) Name() string { return "sqlite" }

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS closes (
			symbol    TEXT    NOT NULL,
			timestamp INTEGER NOT NULL,
			close     REAL    NOT NULL,
			PRIMARY KEY (symbol, timestamp)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_closes_symbol ON closes(symbol)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:30], err)
		}
	}
	return nil
}

// SaveSeries upserts every point of the series in one transaction.
func (s *SQLiteStore) SaveSeries(ctx context.Context, series model.Series) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO closes (symbol, timestamp, close) VALUES (?,?,?)
		ON CONFLICT(symbol, timestamp) DO UPDATE SET close = excluded.close`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	symbol := strings.ToUpper(series.Symbol)
	for _, p := range series.Points {
		if _, err := stmt.ExecContext(ctx, symbol, p.Time, p.Price); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert %s@%d: %w", symbol, p.Time, err)
		}
	}
	return tx.Commit()
}

// LoadSeries returns every stored close for symbol, ascending by time.
// An unknown symbol yields an empty series.
func (s *SQLiteStore) LoadSeries(ctx context.Context, symbol string) (model.Series, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, close FROM closes WHERE symbol = ? ORDER BY timestamp`, strings.ToUpper(symbol))
	if err != nil {
		return model.Series{Symbol: symbol}, fmt.Errorf("query closes: %w", err)
	}
	defer rows.Close()

	var points []model.Point
	for rows.Next() {
		var p model.Point
		if err := rows.Scan(&p.Time, &p.Price); err != nil {
			return model.Series{Symbol: symbol}, fmt.Errorf("scan close: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return model.Series{Symbol: symbol}, fmt.Errorf("iterate closes: %w", err)
	}
	return model.NewSeries(symbol, points), nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
