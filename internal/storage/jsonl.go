package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// jsonlFile returns the backup file name for a table.
func jsonlFile(table string) string {
	return table + ".jsonl"
}

// Export writes every table to <dir>/<table>.jsonl, one document per line in
// insertion order. Each file is replaced atomically. It returns the number
// of records written per table.
func (b *Backend) Export(ctx context.Context, dir string) (map[string]int, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(types.StandardTableNames))
	for _, name := range types.StandardTableNames {
		var docs []string
		if err := db.SelectContext(ctx, &docs, "SELECT data FROM "+name+" ORDER BY id"); err != nil {
			return counts, fmt.Errorf("reading %s: %w", name, err)
		}
		records := make([]json.RawMessage, len(docs))
		for i, d := range docs {
			records[i] = json.RawMessage(d)
		}
		if err := writeJSONL(filepath.Join(dir, jsonlFile(name)), records); err != nil {
			return counts, fmt.Errorf("writing %s: %w", name, err)
		}
		counts[name] = len(records)
	}
	return counts, nil
}

// stampHeader is the part of every entity document Import needs.
type stampHeader struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Import loads <dir>/<table>.jsonl files into the database inside one
// transaction. Records are upserted by id. Missing files are skipped, as are
// lines that are malformed or carry no id. It returns the number of records
// loaded per table.
func (b *Backend) Import(ctx context.Context, dir string) (map[string]int, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	counts := make(map[string]int, len(types.StandardTableNames))
	for _, name := range types.StandardTableNames {
		records, err := readJSONL(filepath.Join(dir, jsonlFile(name)))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		query := tx.Rebind("INSERT INTO " + name + " (id, data, created_at, updated_at) VALUES (?, ?, ?, ?) " +
			"ON CONFLICT (id) DO UPDATE SET data = excluded.data, created_at = excluded.created_at, updated_at = excluded.updated_at")
		n := 0
		for _, rec := range records {
			var h stampHeader
			if err := json.Unmarshal(rec, &h); err != nil || strings.TrimSpace(h.ID) == "" {
				continue
			}
			_, err := tx.ExecContext(ctx, query, h.ID, string(rec),
				h.CreatedAt.UTC().Format(timeLayout), h.UpdatedAt.UTC().Format(timeLayout))
			if err != nil {
				return nil, fmt.Errorf("importing %s %s: %w", name, h.ID, err)
			}
			n++
		}
		counts[name] = n
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return counts, nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
