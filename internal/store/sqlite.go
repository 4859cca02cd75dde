package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"GoldSentinel/internal/model"
)

// SQLiteStore caches bars in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so reads don't block the writer during a polling cycle.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite bar cache opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bars (
			symbol   TEXT    NOT NULL,
			interval TEXT    NOT NULL,
			ts       INTEGER NOT NULL,
			open     REAL,
			high     REAL,
			low      REAL,
			close    REAL,
			volume   REAL,
			PRIMARY KEY (symbol, interval, ts)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_ts ON bars(symbol, interval, ts)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// SaveBars upserts bars keyed by (symbol, interval, timestamp).
func (s *SQLiteStore) SaveBars(symbol, interval string, bars []model.Bar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO bars
		(symbol, interval, ts, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, interval, b.Time.Unix(),
			b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	return tx.Commit()
}

// LoadBars returns up to limit most recent cached bars in chronological
// order.
func (s *SQLiteStore) LoadBars(symbol, interval string, limit int) ([]model.Bar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT ts, open, high, low, close, volume
		FROM bars WHERE symbol = ? AND interval = ?
		ORDER BY ts DESC LIMIT ?`, symbol, interval, limit)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var ts int64
		var b model.Bar
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(ts, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest-first from the query; reverse to chronological.
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

func (s *SQLiteStore) Close() error {
	log.Info("closing sqlite bar cache")
	return s.db.Close()
}
