// Package storage persists classification outcomes and image analyses in a
// local SQLite database. The classification core never touches this package;
// callers hand it finished results.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ecosort/wastesort"
)

// Record is one classification outcome to persist.
type Record struct {
	UserID     string
	Action     string // "text_classify", "image_classify", "search"
	ItemName   string
	Category   wastesort.Category
	Confidence float64
	Timestamp  time.Time
}

// ImageRecord is one stored image analysis, keyed by perceptual hash.
type ImageRecord struct {
	Hash        string
	Format      string
	Features    *wastesort.ImageFeatures
	CameraMake  string
	CameraModel string
	CreatedAt   time.Time
}

// CategoryCount is one row of the daily statistics rollup.
type CategoryCount struct {
	Category wastesort.Category
	Count    int
}

// Store wraps the SQLite connection. sql.DB serializes writers on its own;
// Store adds no locking of its own.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
}

// Open opens or creates the database at dir/wastesort.db and ensures the
// schema exists.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "wastesort.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	s := &Store{conn: conn, logger: logger}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	logger.Debug("storage ready", "path", dbPath)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			action TEXT NOT NULL,
			item_name TEXT NOT NULL,
			category TEXT NOT NULL,
			confidence REAL,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS image_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			image_hash TEXT UNIQUE,
			format TEXT,
			analysis TEXT,
			camera_make TEXT,
			camera_model TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS statistics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date DATE NOT NULL,
			category TEXT NOT NULL,
			count INTEGER DEFAULT 0,
			UNIQUE(date, category)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_user_records_user
			ON user_records(user_id, timestamp)`,
	}
	for _, stmt := range stmts {
		if _, err := s.conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// AddRecord inserts a classification outcome and bumps the daily statistics
// counter for its category in one transaction.
func (s *Store) AddRecord(rec Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO user_records (user_id, action, item_name, category, confidence, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.UserID, rec.Action, rec.ItemName, rec.Category.String(),
		rec.Confidence, rec.Timestamp.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	day := rec.Timestamp.UTC().Format("2006-01-02")
	_, err = tx.Exec(
		`INSERT INTO statistics (date, category, count) VALUES (?, ?, 1)
		 ON CONFLICT(date, category) DO UPDATE SET count = count + 1`,
		day, rec.Category.String(),
	)
	if err != nil {
		return fmt.Errorf("update statistics: %w", err)
	}

	return tx.Commit()
}

// AddImageRecord upserts an image analysis keyed by its perceptual hash.
func (s *Store) AddImageRecord(rec ImageRecord) error {
	analysis, err := json.Marshal(rec.Features)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	_, err = s.conn.Exec(
		`INSERT INTO image_records (image_hash, format, analysis, camera_make, camera_model)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(image_hash) DO UPDATE SET
			format = excluded.format,
			analysis = excluded.analysis,
			camera_make = excluded.camera_make,
			camera_model = excluded.camera_model`,
		rec.Hash, rec.Format, string(analysis), rec.CameraMake, rec.CameraModel,
	)
	if err != nil {
		return fmt.Errorf("upsert image record: %w", err)
	}
	return nil
}

// ImageByHash loads a stored image analysis. Returns (nil, nil) when the
// hash is unknown.
func (s *Store) ImageByHash(hash string) (*ImageRecord, error) {
	row := s.conn.QueryRow(
		`SELECT image_hash, format, analysis, camera_make, camera_model, created_at
		 FROM image_records WHERE image_hash = ?`, hash)

	var rec ImageRecord
	var analysis string
	var createdAt string
	err := row.Scan(&rec.Hash, &rec.Format, &analysis, &rec.CameraMake, &rec.CameraModel, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load image record: %w", err)
	}

	if analysis != "" {
		var feat wastesort.ImageFeatures
		if err := json.Unmarshal([]byte(analysis), &feat); err != nil {
			s.logger.Warn("corrupt stored analysis", "hash", hash, "error", err)
		} else {
			rec.Features = &feat
		}
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}

// RecentRecords returns a user's latest classification records, newest first.
func (s *Store) RecentRecords(userID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.conn.Query(
		`SELECT user_id, action, item_name, category, confidence, timestamp
		 FROM user_records
		 WHERE user_id = ?
		 ORDER BY timestamp DESC
		 LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var category, ts string
		if err := rows.Scan(&rec.UserID, &rec.Action, &rec.ItemName, &category, &rec.Confidence, &ts); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if cat, ok := wastesort.ParseCategory(category); ok {
			rec.Category = cat
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CategoryStats sums the statistics rollup over the last days, in category
// declaration order. Categories with no records report zero.
func (s *Store) CategoryStats(days int) ([]CategoryCount, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")

	rows, err := s.conn.Query(
		`SELECT category, SUM(count) FROM statistics
		 WHERE date >= ?
		 GROUP BY category`, since)
	if err != nil {
		return nil, fmt.Errorf("query statistics: %w", err)
	}
	defer rows.Close()

	totals := make(map[wastesort.Category]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scan statistics: %w", err)
		}
		if cat, ok := wastesort.ParseCategory(category); ok {
			totals[cat] += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]CategoryCount, 0, 4)
	for _, c := range wastesort.Categories() {
		out = append(out, CategoryCount{Category: c, Count: totals[c]})
	}
	return out, nil
}
