package mcgen

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
	_ "modernc.org/sqlite"
)

// Index remembers the input hash of every generated class so unchanged
// targets are not rewritten.
type Index struct {
	db *sql.DB
}

// IndexEntry is one generated class.
type IndexEntry struct {
	Target    string
	BlockIDs  []string
	Hash      uint64
	Fields    int
	Boxes     int
	UpdatedAt time.Time
}

func OpenIndex(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("empty index path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir index dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS classes (
			target TEXT PRIMARY KEY,
			block_ids TEXT NOT NULL,
			hash TEXT NOT NULL,
			fields INTEGER NOT NULL,
			boxes INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init index: %w", err)
		}
	}
	return &Index{db: db}, nil
}

func (ix *Index) Close() error { return ix.db.Close() }

// Lookup returns the entry recorded for target.
func (ix *Index) Lookup(ctx context.Context, target string) (IndexEntry, bool, error) {
	row := ix.db.QueryRowContext(ctx,
		`SELECT target, block_ids, hash, fields, boxes, updated_at FROM classes WHERE target = ?`, target)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return IndexEntry{}, false, nil
	}
	if err != nil {
		return IndexEntry{}, false, fmt.Errorf("lookup %s: %w", target, err)
	}
	return e, true, nil
}

// Unchanged reports whether target was generated from inputs hashing to
// hash and still exists on disk.
func (ix *Index) Unchanged(ctx context.Context, target string, hash uint64) (bool, error) {
	e, ok, err := ix.Lookup(ctx, target)
	if err != nil || !ok || e.Hash != hash {
		return false, err
	}
	if _, err := os.Stat(target); err != nil {
		return false, nil
	}
	return true, nil
}

func (ix *Index) Put(ctx context.Context, e IndexEntry) error {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}
	_, err := ix.db.ExecContext(ctx,
		`INSERT INTO classes (target, block_ids, hash, fields, boxes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(target) DO UPDATE SET
			block_ids = excluded.block_ids,
			hash = excluded.hash,
			fields = excluded.fields,
			boxes = excluded.boxes,
			updated_at = excluded.updated_at`,
		e.Target,
		strings.Join(e.BlockIDs, ","),
		strconv.FormatUint(e.Hash, 16),
		e.Fields,
		e.Boxes,
		e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", e.Target, err)
	}
	return nil
}

// Entries lists every recorded class ordered by target.
func (ix *Index) Entries(ctx context.Context) ([]IndexEntry, error) {
	rows, err := ix.db.QueryContext(ctx,
		`SELECT target, block_ids, hash, fields, boxes, updated_at FROM classes ORDER BY target`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []IndexEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (IndexEntry, error) {
	var (
		e                 IndexEntry
		ids, hash, stamp string
	)
	if err := r.Scan(&e.Target, &ids, &hash, &e.Fields, &e.Boxes, &stamp); err != nil {
		return IndexEntry{}, err
	}
	if ids != "" {
		e.BlockIDs = strings.Split(ids, ",")
	}
	h, err := strconv.ParseUint(hash, 16, 64)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("parse hash %q: %w", hash, err)
	}
	e.Hash = h
	if e.UpdatedAt, err = time.Parse(time.RFC3339Nano, stamp); err != nil {
		return IndexEntry{}, fmt.Errorf("parse updated_at %q: %w", stamp, err)
	}
	return e, nil
}

// inputHash accumulates everything a generated class depends on.
type inputHash struct {
	h *xxh3.Hasher
}

func newInputHash() inputHash { return inputHash{h: xxh3.New()} }

// add writes a length-prefixed part so adjacent parts cannot alias.
func (ih inputHash) add(parts ...string) {
	for _, p := range parts {
		_, _ = ih.h.WriteString(strconv.Itoa(len(p)))
		_, _ = ih.h.WriteString(":")
		_, _ = ih.h.WriteString(p)
	}
}

func (ih inputHash) addBytes(b []byte) {
	_, _ = ih.h.WriteString(strconv.Itoa(len(b)))
	_, _ = ih.h.WriteString(":")
	_, _ = ih.h.Write(b)
}

func (ih inputHash) Sum64() uint64 { return ih.h.Sum64() }
