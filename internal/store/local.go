// Package store implements CollabFlow's local persistence: a SQLite database
// holding three keyed slots (requests, templates, email config), each storing
// its entire structure as serialized JSON. Slots are loaded once at startup
// and overwritten wholesale on every change, so a restart reconstructs the
// exact last-saved state.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"collabflow/internal/logging"

	_ "modernc.org/sqlite"
)

// Slot keys. Absence of a slot means "empty" (requests) or "use built-in
// defaults" (templates, email config).
const (
	slotRequests    = "collabflow_requests"
	slotTemplates   = "collabflow_templates"
	slotEmailConfig = "collabflow_email_config"
)

// Local is the SQLite-backed slot store shared by the repositories.
type Local struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// Open initializes the SQLite database at the given path.
func Open(path string) (*Local, error) {
	timer := logging.StartTimer(logging.CategoryStore, "store.Open")
	defer timer.Stop()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite synchronous=NORMAL: %v", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Store("Slot store ready at %s", path)
	return &Local{db: db, dbPath: path}, nil
}

// Close closes the underlying database.
func (s *Local) Close() error {
	return s.db.Close()
}

// loadSlot returns the raw value for key and whether the slot exists.
func (s *Local) loadSlot(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load slot %s: %w", key, err)
	}
	return value, true, nil
}

// saveSlot replaces the slot value wholesale.
func (s *Local) saveSlot(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", key, err)
	}
	logging.StoreDebug("Slot %s persisted (%d bytes)", key, len(value))
	return nil
}
