package database

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
	sb   sq.StatementBuilderType
}

// Ensure DB implements Store interface.
var _ Store = (*DB)(nil)

// New opens or creates an SQLite database at the given path.
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Enable WAL mode for better concurrency.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	db := &DB{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Question).RunWith(conn),
	}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// DatabaseType returns the database backend name.
func (db *DB) DatabaseType() string {
	return "SQLite"
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Get retrieves the value stored under key.
func (db *DB) Get(key string) ([]byte, bool, error) {
	return getValue(db.sb, key)
}

// Set saves a value, overwriting any previous one.
func (db *DB) Set(key string, value []byte) error {
	return setValue(db.sb, key, value)
}

func getValue(sb sq.StatementBuilderType, key string) ([]byte, bool, error) {
	var val string
	err := sb.Select("value").From("kv").Where(sq.Eq{"key": key}).QueryRow().Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(val), true, nil
}

func setValue(sb sq.StatementBuilderType, key string, value []byte) error {
	_, err := sb.Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, string(value), sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		Exec()
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
