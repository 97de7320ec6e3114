// Package store persists finished games: a row per result plus a
// zstd-compressed snapshot blob from which the exact final state can be
// reconstructed.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"spiceroute/internal/engine"
)

type Store struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Result is one finished game.
type Result struct {
	ID         string            `json:"id"`
	FinishedAt time.Time         `json:"finished_at"`
	Seed       int64             `json:"seed"`
	Players    []engine.PlayerID `json:"players"`
	Standings  []engine.Standing `json:"standings"`
	Digest     string            `json:"digest"`
}

// Open creates or opens the SQLite database at path with WAL journaling and
// a busy timeout, and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS games (
		id          TEXT PRIMARY KEY,
		finished_at TEXT NOT NULL,
		seed        INTEGER NOT NULL,
		players     TEXT NOT NULL,
		standings   TEXT NOT NULL,
		digest      TEXT NOT NULL,
		snapshot    BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, enc: enc, dec: dec}, nil
}

func (s *Store) Close() error {
	s.enc.Close()
	s.dec.Close()
	return s.db.Close()
}

// SaveResult writes a finished game and its compressed snapshot.
func (s *Store) SaveResult(ctx context.Context, r Result, snap *engine.Snapshot) error {
	raw, err := snap.Encode()
	if err != nil {
		return err
	}
	blob := s.enc.EncodeAll(raw, nil)

	players, err := json.Marshal(r.Players)
	if err != nil {
		return err
	}
	standings, err := json.Marshal(r.Standings)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO games (id, finished_at, seed, players, standings, digest, snapshot)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.FinishedAt.UTC().Format(time.RFC3339Nano), r.Seed,
		string(players), string(standings), r.Digest, blob)
	return err
}

// LoadSnapshot reads back the final snapshot of a stored game.
func (s *Store) LoadSnapshot(ctx context.Context, id string) (*engine.Snapshot, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM games WHERE id = ?`, id).Scan(&blob)
	if err != nil {
		return nil, err
	}
	raw, err := s.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot %s: %w", id, err)
	}
	return engine.DecodeSnapshot(raw)
}

// ListResults returns the most recently finished games.
func (s *Store) ListResults(ctx context.Context, limit int) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, finished_at, seed, players, standings, digest
		 FROM games ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r         Result
			finished  string
			players   string
			standings string
		)
		if err := rows.Scan(&r.ID, &finished, &r.Seed, &players, &standings, &r.Digest); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, finished); err == nil {
			r.FinishedAt = t
		}
		if err := json.Unmarshal([]byte(players), &r.Players); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(standings), &r.Standings); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
