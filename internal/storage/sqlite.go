// Package storage provides SQLite-based persistence for generated levels.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/levelforge/internal/level"
)

// Store manages the SQLite database connection for the level archive.
type Store struct {
	db *sql.DB
}

// LevelRecord is one archived level document.
type LevelRecord struct {
	ID        string
	Seed      int64
	LevelName string
	UserName  string
	Size      int
	Features  string // Comma separated feature names
	Attempts  int
	Document  []byte // Encoded JSON document
	CreatedAt time.Time
}

// UploadRecord is the outcome of one upload attempt.
type UploadRecord struct {
	ID        int64
	LevelID   string
	Path      string // Remote path the document was written to
	OK        bool
	Message   string
	CreatedAt time.Time
}

// Stats summarizes the archive.
type Stats struct {
	Levels            int
	Uploads           int
	SuccessfulUploads int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS levels (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			level_name TEXT NOT NULL DEFAULT '',
			user_name TEXT NOT NULL DEFAULT '',
			size INTEGER NOT NULL,
			features TEXT NOT NULL DEFAULT '',
			attempts INTEGER NOT NULL DEFAULT 1,
			document TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_levels_created ON levels(created_at DESC);

		CREATE TABLE IF NOT EXISTS uploads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			path TEXT NOT NULL DEFAULT '',
			ok INTEGER NOT NULL DEFAULT 0,
			message TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_uploads_level_id ON uploads(level_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveLevel archives a level and returns its ID. A missing ID is generated;
// missing name, author and size are read from the document itself.
func (s *Store) SaveLevel(rec LevelRecord) (string, error) {
	if len(rec.Document) == 0 {
		return "", fmt.Errorf("storage: cannot save level: empty document")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.LevelName == "" || rec.UserName == "" || rec.Size == 0 {
		sum, err := level.Inspect(rec.Document)
		if err != nil {
			return "", fmt.Errorf("storage: cannot save level: %w", err)
		}
		if rec.LevelName == "" {
			rec.LevelName = sum.LevelName
		}
		if rec.UserName == "" {
			rec.UserName = sum.UserName
		}
		if rec.Size == 0 {
			rec.Size = sum.Size
		}
	}
	if rec.Attempts <= 0 {
		rec.Attempts = 1
	}

	_, err := s.db.Exec(
		`INSERT INTO levels (id, seed, level_name, user_name, size, features, attempts, document)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Seed, rec.LevelName, rec.UserName, rec.Size, rec.Features, rec.Attempts, string(rec.Document),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save level: %w", err)
	}
	return rec.ID, nil
}

// LevelByID retrieves a level by ID. Returns nil, nil when it does not exist.
func (s *Store) LevelByID(id string) (*LevelRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, seed, level_name, user_name, size, features, attempts, document, created_at
		 FROM levels
		 WHERE id = ?`,
		id,
	)
	rec, err := scanLevel(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level: %w", err)
	}
	return rec, nil
}

// RecentLevels retrieves the most recently archived levels, newest first.
func (s *Store) RecentLevels(limit int) ([]LevelRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, level_name, user_name, size, features, attempts, document, created_at
		 FROM levels
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var records []LevelRecord
	for rows.Next() {
		rec, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// DeleteLevel removes a level and its upload history.
func (s *Store) DeleteLevel(id string) error {
	if _, err := s.db.Exec("DELETE FROM uploads WHERE level_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete uploads: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM levels WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete level: %w", err)
	}
	return nil
}

// RecordUpload stores the outcome of an upload attempt.
// Returns the ID of the inserted record.
func (s *Store) RecordUpload(rec UploadRecord) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO uploads (level_id, path, ok, message) VALUES (?, ?, ?, ?)",
		rec.LevelID, rec.Path, rec.OK, rec.Message,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record upload: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// UploadsFor retrieves the upload attempts for a level, oldest first.
func (s *Store) UploadsFor(levelID string) ([]UploadRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, level_id, path, ok, message, created_at
		 FROM uploads
		 WHERE level_id = ?
		 ORDER BY id`,
		levelID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query uploads: %w", err)
	}
	defer rows.Close()

	var records []UploadRecord
	for rows.Next() {
		var rec UploadRecord
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.LevelID, &rec.Path, &rec.OK, &rec.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Stats returns archive totals.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	var okCount sql.NullInt64
	err := s.db.QueryRow(
		`SELECT
			(SELECT COUNT(*) FROM levels),
			(SELECT COUNT(*) FROM uploads),
			(SELECT SUM(ok) FROM uploads)`,
	).Scan(&st.Levels, &st.Uploads, &okCount)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	if okCount.Valid {
		st.SuccessfulUploads = int(okCount.Int64)
	}
	return st, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLevel(r rowScanner) (*LevelRecord, error) {
	var rec LevelRecord
	var doc string
	var createdAt any
	if err := r.Scan(
		&rec.ID,
		&rec.Seed,
		&rec.LevelName,
		&rec.UserName,
		&rec.Size,
		&rec.Features,
		&rec.Attempts,
		&doc,
		&createdAt,
	); err != nil {
		return nil, err
	}
	rec.Document = []byte(doc)
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

// parseTime handles the datetime as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
