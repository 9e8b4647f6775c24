// Package session models the per-operator exploration state: the scratch
// copy of the uploaded database, its open handle, and the currently loaded
// table snapshot. Components receive a *Session explicitly instead of
// reading ambient globals.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sumanthd032/DataCanvas/internal/frame"
	"github.com/sumanthd032/DataCanvas/internal/sqlitedb"
)

// Session owns at most one live database handle and one temp file at a
// time. Replacing the upload releases both before anything new is opened.
type Session struct {
	ID string

	mu        sync.Mutex
	db        *sql.DB
	tempPath  string // scratch copy of the upload; empty for side-loads
	name      string // display name of the open database
	openedAt  time.Time
	table     string       // currently selected table
	loaded    *frame.Frame // snapshot of the selected table
	lastChart []byte       // PNG of the most recent chart render
	tempDir   string
}

// New creates an empty session. Uploads go to tempDir (defaults to the OS
// temp directory).
func New(tempDir string) *Session {
	return &Session{ID: uuid.NewString(), tempDir: tempDir}
}

// ReplaceUpload releases any previous handle and temp file, persists data to
// a fresh scratch file, and opens it. On failure no partial state is
// retained: the scratch file is removed and the session holds no handle.
func (s *Session) ReplaceUpload(data []byte, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()

	dir := s.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	tmp, err := os.CreateTemp(dir, "datacanvas-*.db")
	if err != nil {
		return fmt.Errorf("failed to create scratch file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to persist upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to persist upload: %w", err)
	}

	db, err := sqlitedb.Open(tempPath)
	if err != nil {
		_ = os.Remove(tempPath)
		return err
	}

	s.db = db
	s.tempPath = tempPath
	s.name = name
	s.openedAt = time.Now()
	return nil
}

// OpenLocal releases current state and opens a database file in place,
// read-only, without taking a scratch copy.
func (s *Session) OpenLocal(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()

	db, err := sqlitedb.OpenReadOnly(path)
	if err != nil {
		return err
	}

	s.db = db
	s.name = filepath.Base(path)
	s.openedAt = time.Now()
	return nil
}

// DB returns the open handle, or nil when no database is open.
func (s *Session) DB() *sql.DB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db
}

// Open reports whether a database is currently open.
func (s *Session) Open() bool { return s.DB() != nil }

// Name returns the display name of the open database.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SetLoaded records the selected table and its in-memory snapshot. The
// previous snapshot is discarded.
func (s *Session) SetLoaded(table string, f *frame.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
	s.loaded = f
}

// Loaded returns the selected table name and its snapshot; ok is false when
// no table has been loaded.
func (s *Session) Loaded() (table string, f *frame.Frame, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded == nil {
		return "", nil, false
	}
	return s.table, s.loaded, true
}

// SetChart stores the PNG bytes of the most recent chart render.
func (s *Session) SetChart(png []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastChart = png
}

// Chart returns the most recent chart render, or nil.
func (s *Session) Chart() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastChart
}

// Close releases the handle and removes the temp file. Safe to call on an
// empty session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
	return nil
}

// releaseLocked closes the handle, removes the scratch file and drops the
// loaded snapshot. Callers hold s.mu.
func (s *Session) releaseLocked() {
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
	if s.tempPath != "" {
		_ = os.Remove(s.tempPath)
		s.tempPath = ""
	}
	s.name = ""
	s.table = ""
	s.loaded = nil
	s.lastChart = nil
}

// Manager hands out sessions keyed by cookie-backed IDs and closes them all
// on shutdown.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	tempDir  string
}

// NewManager creates a Manager whose sessions store scratch files under
// tempDir.
func NewManager(tempDir string) *Manager {
	return &Manager{sessions: make(map[string]*Session), tempDir: tempDir}
}

// Get returns the session for id, creating it on first use.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := New(m.tempDir)
	if id != "" {
		s.ID = id
	}
	m.sessions[s.ID] = s
	return s
}

// Close releases every session.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		_ = s.Close()
	}
	m.sessions = make(map[string]*Session)
	return nil
}
