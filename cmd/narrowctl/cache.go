package main

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/funvibe/funbit/pkg/funbit"
	_ "modernc.org/sqlite"
)

// Cache is the local fixture-result cache of SPEC_FULL.md §11:
// content-hash of a fixture's archive bytes maps to its last observed
// pass/fail and duration, so `narrowctl replay --changed-only` can
// skip fixtures whose content hasn't moved since the last green run.
// This is purely a CLI incremental-replay convenience; the core
// itself never persists narrowed facts (spec.md §1's "no persistent
// emission" non-goal binds the core, not this outer tool).
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if absent) the sqlite-backed cache at
// path, matching the teacher's modernc.org/sqlite usage style: pure-Go
// driver, no cgo, registered under the "sqlite" database/sql name.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS fixture_runs (
	hash        TEXT PRIMARY KEY,
	passed      INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	facts       BLOB
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

// hashOf derives the cache key from a fixture's raw archive bytes.
func hashOf(archiveBytes []byte) string {
	sum := sha256.Sum256(archiveBytes)
	return hex.EncodeToString(sum[:])
}

// CachedRun is a previously recorded replay outcome for a given
// fixture content hash.
type CachedRun struct {
	Passed   bool
	Duration time.Duration
	Facts    uint32 // packed TypeFacts snapshot of the last true_facts.facts seen, if any
}

// Lookup returns the cached run for hash, if present.
func (c *Cache) Lookup(hash string) (CachedRun, bool, error) {
	var passed int
	var durationNs int64
	var factsBlob []byte
	err := c.db.QueryRow(
		`SELECT passed, duration_ns, facts FROM fixture_runs WHERE hash = ?`, hash,
	).Scan(&passed, &durationNs, &factsBlob)
	if err == sql.ErrNoRows {
		return CachedRun{}, false, nil
	}
	if err != nil {
		return CachedRun{}, false, fmt.Errorf("looking up cache entry %s: %w", hash, err)
	}
	facts, err := unpackTypeFacts(factsBlob)
	if err != nil {
		return CachedRun{}, false, err
	}
	return CachedRun{Passed: passed != 0, Duration: time.Duration(durationNs), Facts: facts}, true, nil
}

// Store records (or overwrites) the run outcome for hash.
func (c *Cache) Store(hash string, passed bool, duration time.Duration, facts uint32) error {
	blob, err := packTypeFacts(facts)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(
		`INSERT INTO fixture_runs (hash, passed, duration_ns, facts) VALUES (?, ?, ?, ?)
		 ON CONFLICT(hash) DO UPDATE SET passed = excluded.passed, duration_ns = excluded.duration_ns, facts = excluded.facts`,
		hash, boolToInt(passed), duration.Nanoseconds(), blob,
	)
	if err != nil {
		return fmt.Errorf("storing cache entry %s: %w", hash, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// packTypeFacts packs a flow.TypeFacts bitset into a fixed-width
// 32-bit bitstring using funbit's binary construction API, rather
// than a bespoke byte-packing routine — funxy's own language treats
// binary/bitstring literals as first-class (SPEC_FULL.md §11), so the
// cache reuses that construction idiom for the one dense bitset value
// it needs to persist.
func packTypeFacts(facts uint32) ([]byte, error) {
	bs, err := funbit.NewBuilder().
		AddInteger(facts, funbit.WithSize(32), funbit.WithUnit(1)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("packing type facts: %w", err)
	}
	return bs.Bytes(), nil
}

// unpackTypeFacts is packTypeFacts's inverse. An empty blob (no facts
// recorded for this run) unpacks to the zero TypeFacts value.
func unpackTypeFacts(blob []byte) (uint32, error) {
	if len(blob) == 0 {
		return 0, nil
	}
	var facts uint32
	err := funbit.NewParser().
		SetBinary(funbit.NewBitStringFromBytes(blob)).
		Field(&facts, funbit.WithSize(32), funbit.WithUnit(1)).
		Parse()
	if err != nil {
		return 0, fmt.Errorf("unpacking type facts: %w", err)
	}
	return facts, nil
}
