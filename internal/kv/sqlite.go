package kv

import (
	"database/sql"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// SQLite is a Store backed by a single-table sqlite database.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the
// slots table exists. Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	_, err = conn.Exec(`CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &SQLite{conn: conn}, nil
}

func (s *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM slots WHERE name = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLite) Set(key, value string) error {
	_, err := s.conn.Exec(
		"INSERT INTO slots (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

func (s *SQLite) Delete(key string) error {
	_, err := s.conn.Exec("DELETE FROM slots WHERE name = ?", key)
	return err
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}
