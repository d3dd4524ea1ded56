package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"snake-highscore/internal/domain/highscores"
)

const schema = `
CREATE TABLE IF NOT EXISTS highscores (
	id        TEXT PRIMARY KEY,
	user_name TEXT NOT NULL,
	score     INTEGER NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS highscores_rank ON highscores (score DESC, timestamp ASC, id ASC);
CREATE INDEX IF NOT EXISTS highscores_timestamp ON highscores (timestamp);`

// SQLiteStore persists high scores in a SQLite database file.
// Timestamps are stored as Unix nanoseconds so ordering and filtering stay numeric.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, rec highscores.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO highscores (id, user_name, score, timestamp) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.UserName, int64(rec.Score), rec.Timestamp.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert highscore: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Find(ctx context.Context, q Query) ([]highscores.Record, error) {
	var (
		where string
		args  []any
	)
	if q.Since != nil {
		where = "WHERE timestamp >= ?"
		args = append(args, q.Since.UTC().UnixNano())
	}
	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}
	skip := q.Skip
	if skip < 0 {
		skip = 0
	}
	args = append(args, limit, skip)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_name, score, timestamp
		FROM highscores `+where+`
		ORDER BY score DESC, timestamp ASC, id ASC
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("query highscores: %w", err)
	}
	defer rows.Close()

	out := make([]highscores.Record, 0)
	for rows.Next() {
		var (
			r     highscores.Record
			score int64
			nanos int64
		)
		if err := rows.Scan(&r.ID, &r.UserName, &score, &nanos); err != nil {
			return nil, fmt.Errorf("scan highscore: %w", err)
		}
		r.Score = uint(score)
		r.Timestamp = time.Unix(0, nanos).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteMany removes ids inside one transaction.
func (s *SQLiteStore) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM highscores WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("delete highscores: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete: %w", err)
	}
	return int(n), nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
