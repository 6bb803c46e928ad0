package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/glebarez/go-sqlite"

	"github.com/always-cache/assets"
)

// MemoryDSN opens a shared in-memory database.
const MemoryDSN = "file::memory:?cache=shared"

type SQLiteStore struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

// NewSQLiteStore opens a store with the given filename as the db.
// If file name is empty, a new in-memory db is opened.
func NewSQLiteStore(filename string) (SQLiteStore, error) {
	if filename == "" {
		filename = MemoryDSN
	}
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return SQLiteStore{}, fmt.Errorf("opening %s: %w", filename, err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS assets (
		route TEXT PRIMARY KEY,
		content BLOB,
		hash TEXT,
		modified INTEGER,
		mime TEXT
	)`)
	if err != nil {
		db.Close()
		return SQLiteStore{}, fmt.Errorf("creating table: %w", err)
	}
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return SQLiteStore{}, fmt.Errorf("setting journal mode: %w", err)
	}
	return SQLiteStore{
		db:         db,
		writeMutex: &sync.Mutex{},
	}, nil
}

func (s SQLiteStore) All() ([]assets.File, error) {
	files := make([]assets.File, 0)
	rows, err := s.db.Query(`SELECT
		route, content, hash, modified, mime
		FROM assets ORDER BY route`)
	if err != nil {
		return files, err
	}
	defer rows.Close()
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return files, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (s SQLiteStore) Get(route string) (assets.File, bool, error) {
	f, err := scanFile(s.db.QueryRow(`SELECT
		route, content, hash, modified, mime
		FROM assets WHERE route = ?`, route))
	if errors.Is(err, sql.ErrNoRows) {
		return assets.File{}, false, nil
	}
	if err != nil {
		return assets.File{}, false, err
	}
	return f, true, nil
}

func (s SQLiteStore) Put(f assets.File) error {
	if f.ContentHash == "" {
		f.ContentHash = assets.ContentHash(f.Content)
	}
	if f.Content == nil {
		f.Content = []byte{}
	}
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec(`INSERT OR REPLACE INTO assets
		(route, content, hash, modified, mime) VALUES (?, ?, ?, ?, ?)`,
		f.Route, f.Content, f.ContentHash, f.LastModified, f.MimeType)
	return err
}

func (s SQLiteStore) Purge(route string) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec("DELETE FROM assets WHERE route = ?", route)
	return err
}

func (s SQLiteStore) Has(route string) bool {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM assets WHERE route = ?", route).Scan(&one)
	return err == nil
}

func (s SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(row scanner) (assets.File, error) {
	var f assets.File
	err := row.Scan(&f.Route, &f.Content, &f.ContentHash, &f.LastModified, &f.MimeType)
	if f.Content == nil {
		f.Content = []byte{}
	}
	return f, err
}
