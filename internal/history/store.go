// Package history persists one durable record per successful generation and
// serves the searchable, paginated read/delete interface over them.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/twalderman/zimage-studio/internal/logging"
)

// Query limits. Callers may ask for fewer, never for more than MaxLimit.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// timeLayout is fixed-width UTC so lexicographic order matches chronology.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var (
	// ErrDuplicateID is returned when appending a record whose identifier
	// already exists.
	ErrDuplicateID = errors.New("history: duplicate identifier")

	// ErrNotFound is returned when no record has the given identifier.
	ErrNotFound = errors.New("history: record not found")
)

// Record is one completed generation attempt. Records are created exactly
// once and never updated in place.
type Record struct {
	ID             string
	Prompt         string
	NegativePrompt string // empty means none
	Width          int
	Height         int
	Steps          int
	Seed           string // tool may report seeds in non-numeric form
	OutputPath     string
	SVGPath        string // empty means no secondary artifact
	SVGPreset      string
	Loras          string // serialized adapter list, JSON
	Duration       float64
	CreatedAt      time.Time
}

// Store is the SQLite-backed history store. Writers are serialized through
// the mutex; SQLite's WAL mode keeps readers consistent against them.
type Store struct {
	db              *sql.DB
	mu              sync.RWMutex
	dbPath          string
	caseInsensitive bool
}

// Option configures a Store.
type Option func(*Store)

// WithCaseInsensitiveSearch makes Query fold case when matching prompts.
func WithCaseInsensitiveSearch() Option {
	return func(s *Store) { s.caseInsensitive = true }
}

// NewStore initializes the SQLite database at the given path.
func NewStore(path string, opts ...Option) (*Store, error) {
	logging.Store("initializing history store at %s", path)

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("failed to set sqlite journal_mode=WAL: %v", err)
	}
	// synchronous=NORMAL is safe under WAL and keeps each append commit
	// cheap; durability of committed transactions is preserved.
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		logging.StoreDebug("failed to set sqlite synchronous=NORMAL: %v", err)
	}

	s := &Store{db: db, dbPath: path}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		prompt TEXT NOT NULL,
		negative_prompt TEXT,
		width INTEGER,
		height INTEGER,
		steps INTEGER,
		seed TEXT,
		output_path TEXT,
		svg_path TEXT,
		svg_preset TEXT,
		loras TEXT,
		duration REAL,
		created_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append inserts a new record. The insert is committed before Append returns.
// Fails with ErrDuplicateID if the identifier already exists.
func (s *Store) Append(rec *Record) error {
	if rec.ID == "" {
		return fmt.Errorf("history: record identifier must not be empty")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err := s.db.QueryRow("SELECT 1 FROM history WHERE id = ?", rec.ID).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check identifier: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO history (id, prompt, negative_prompt, width, height, steps,
		                     seed, output_path, svg_path, svg_preset, loras, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Prompt, nullable(rec.NegativePrompt),
		rec.Width, rec.Height, rec.Steps, rec.Seed,
		rec.OutputPath, nullable(rec.SVGPath), nullable(rec.SVGPreset),
		rec.Loras, rec.Duration, rec.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	logging.StoreDebug("appended record %s", rec.ID)
	return nil
}

// Query returns records most-recent-first. An empty search returns all
// records; otherwise only records whose prompt contains the substring.
// Ordering ties on created_at are broken by insertion order, newest first.
func (s *Store) Query(search string, limit, offset int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	const cols = `id, prompt, negative_prompt, width, height, steps, seed,
	              output_path, svg_path, svg_preset, loras, duration, created_at`

	var rows *sql.Rows
	var err error
	switch {
	case search == "":
		rows, err = s.db.Query(fmt.Sprintf(`
			SELECT %s FROM history
			ORDER BY created_at DESC, rowid DESC
			LIMIT ? OFFSET ?`, cols), limit, offset)
	case s.caseInsensitive:
		rows, err = s.db.Query(fmt.Sprintf(`
			SELECT %s FROM history
			WHERE instr(lower(prompt), lower(?)) > 0
			ORDER BY created_at DESC, rowid DESC
			LIMIT ? OFFSET ?`, cols), search, limit, offset)
	default:
		rows, err = s.db.Query(fmt.Sprintf(`
			SELECT %s FROM history
			WHERE instr(prompt, ?) > 0
			ORDER BY created_at DESC, rowid DESC
			LIMIT ? OFFSET ?`, cols), search, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var negative, svgPath, svgPreset, loras sql.NullString
		var created string
		if err := rows.Scan(&rec.ID, &rec.Prompt, &negative, &rec.Width, &rec.Height,
			&rec.Steps, &rec.Seed, &rec.OutputPath, &svgPath, &svgPreset,
			&loras, &rec.Duration, &created); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.NegativePrompt = negative.String
		rec.SVGPath = svgPath.String
		rec.SVGPreset = svgPreset.String
		rec.Loras = loras.String
		if ts, err := time.Parse(timeLayout, created); err == nil {
			rec.CreatedAt = ts
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns a single record by identifier.
func (s *Store) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, prompt, negative_prompt, width, height, steps, seed,
		       output_path, svg_path, svg_preset, loras, duration, created_at
		FROM history WHERE id = ?`, id)

	var rec Record
	var negative, svgPath, svgPreset, loras sql.NullString
	var created string
	err := row.Scan(&rec.ID, &rec.Prompt, &negative, &rec.Width, &rec.Height,
		&rec.Steps, &rec.Seed, &rec.OutputPath, &svgPath, &svgPreset,
		&loras, &rec.Duration, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	rec.NegativePrompt = negative.String
	rec.SVGPath = svgPath.String
	rec.SVGPreset = svgPreset.String
	rec.Loras = loras.String
	if ts, err := time.Parse(timeLayout, created); err == nil {
		rec.CreatedAt = ts
	}
	return &rec, nil
}

// Delete removes a record and attempts best-effort removal of its referenced
// files. A missing file is not an error; only the row removal can fail the
// operation. Fails with ErrNotFound if the identifier is unknown.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var outputPath, svgPath sql.NullString
	err := s.db.QueryRow("SELECT output_path, svg_path FROM history WHERE id = ?", id).
		Scan(&outputPath, &svgPath)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to load record: %w", err)
	}

	for _, p := range []string{outputPath.String, svgPath.String} {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logging.Get(logging.CategoryStore).Warn("failed to remove %s: %v", p, err)
		}
	}

	if _, err := s.db.Exec("DELETE FROM history WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	logging.StoreDebug("deleted record %s", id)
	return nil
}

// Count returns the total number of records.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
