package runlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists event streams in a SQLite database. Use ":memory:"
// as the DSN for an ephemeral store.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runlog_events (
	stream  TEXT NOT NULL,
	version INTEGER NOT NULL,
	id      TEXT NOT NULL,
	type    TEXT NOT NULL,
	data    TEXT,
	created TEXT NOT NULL,
	PRIMARY KEY (stream, version)
);
`

// NewSQLiteStore opens (creating if needed) a SQLite-backed store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("runlog: open sqlite: %w", err)
	}
	// The driver is file-backed; concurrent writers would contend on the
	// whole database anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("runlog: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	if stream == "" {
		return -1, ErrEmptyStream
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, err
	}
	defer tx.Rollback()

	current, err := streamVersionTx(ctx, tx, stream)
	if err != nil {
		return -1, err
	}
	if expectedVersion != current {
		return current, ErrConcurrencyConflict
	}

	version := current
	for _, ev := range events {
		version++
		ev.Stream = stream
		ev.Version = version
		var data []byte
		if ev.Data != nil {
			if data, err = json.Marshal(ev.Data); err != nil {
				return -1, err
			}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO runlog_events (stream, version, id, type, data, created) VALUES (?, ?, ?, ?, ?, ?)`,
			stream, ev.Version, ev.ID, ev.Type, string(data), ev.Created.Format(time.RFC3339Nano))
		if err != nil {
			return -1, err
		}
	}

	if err := tx.Commit(); err != nil {
		return -1, err
	}
	return version, nil
}

func (s *SQLiteStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	current, err := s.StreamVersion(ctx, stream)
	if err != nil {
		return nil, err
	}
	if current < 0 {
		return nil, ErrStreamNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT version, id, type, data, created FROM runlog_events WHERE stream = ? AND version >= ? ORDER BY version`,
		stream, fromVersion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		ev := &Event{Stream: stream}
		var data, created string
		if err := rows.Scan(&ev.Version, &ev.ID, &ev.Type, &data, &created); err != nil {
			return nil, err
		}
		if data != "" {
			if err := json.Unmarshal([]byte(data), &ev.Data); err != nil {
				return nil, err
			}
		}
		if ev.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM runlog_events WHERE stream = ?`, stream)
	var version int
	if err := row.Scan(&version); err != nil {
		return -1, err
	}
	return version, nil
}

func (s *SQLiteStore) DeleteStream(ctx context.Context, stream string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM runlog_events WHERE stream = ?`, stream)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func streamVersionTx(ctx context.Context, tx *sql.Tx, stream string) (int, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM runlog_events WHERE stream = ?`, stream)
	var version int
	if err := row.Scan(&version); err != nil {
		return -1, err
	}
	return version, nil
}
