package activity

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cwru-rcci/metarootbus/internal/codec"
	"github.com/cwru-rcci/metarootbus/internal/result"
	"github.com/cwru-rcci/metarootbus/pkg/logging"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS activity (
	eventtime TEXT NOT NULL,
	type      TEXT NOT NULL,
	action    TEXT NOT NULL,
	arguments TEXT,
	status    INTEGER NOT NULL,
	message   TEXT
)`

const logSubsystem = "activity"

// SQLiteJournal persists one row per call to a local sqlite database
// (pure-Go driver, no cgo), matching original_source's activity_stream.py
// sqlite3 table.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLiteJournal opens (creating if absent) the sqlite database at
// path and ensures the activity table exists.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("activity: open %s: %w", path, err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("activity: create table: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

// Record inserts one row. Params is serialized via the same YAML codec
// used for the wire format. Errors are logged and swallowed, never
// surfaced to the Router.
func (j *SQLiteJournal) Record(actionID string, params any, res result.Result) {
	argBytes, err := codec.EncodeRequest(params)
	if err != nil {
		logging.Warn(logSubsystem, "failed to encode journal arguments for %s: %v", actionID, err)
		argBytes = nil
	}

	_, err = j.db.Exec(
		`INSERT INTO activity (eventtime, type, action, arguments, status, message) VALUES (?, ?, ?, ?, ?, ?)`,
		// Fixed-width fraction so that text order on eventtime is time order.
		time.Now().UTC().Format("2006-01-02T15:04:05.000000000Z07:00"),
		levelName(levelFor(res)),
		actionID,
		string(argBytes),
		res.Status,
		fmt.Sprintf("%v", res.Response),
	)
	if err != nil {
		logging.Warn(logSubsystem, "failed to journal %s: %v", actionID, err)
	}
}

// Close closes the underlying database handle.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// Row is one journaled call, as returned by Tail.
type Row struct {
	EventTime string
	Type      string
	Action    string
	Arguments string
	Status    int
	Message   string
}

// Tail returns the most recent n rows, newest first.
func (j *SQLiteJournal) Tail(n int) ([]Row, error) {
	rows, err := j.db.Query(
		`SELECT eventtime, type, action, arguments, status, message FROM activity ORDER BY eventtime DESC LIMIT ?`,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("activity: tail query: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.EventTime, &r.Type, &r.Action, &r.Arguments, &r.Status, &r.Message); err != nil {
			return nil, fmt.Errorf("activity: scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func levelName(l Level) string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	default:
		return "INFO"
	}
}
