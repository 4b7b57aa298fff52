package snap

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Cache is a Snapper that answers repeated requests from a SQLite database
// and forwards misses to the next Snapper. Only successful responses are
// stored.
type Cache struct {
	db     *sql.DB
	next   Snapper
	hits   atomic.Int64
	misses atomic.Int64
}

// OpenCache opens (creating if needed) the cache database at path and
// migrates it to the latest schema.
func OpenCache(path string, next Snapper) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snap cache %s: %w", path, err)
	}
	// a single connection avoids SQLITE_BUSY between concurrent windows
	db.SetMaxOpenConns(1)
	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("snap cache %s: %w", path, err)
	}
	return &Cache{db: db, next: next}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	// m is not closed: that would close db as well
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// migrateLogger implements migrate.Logger
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool { return false }

// Snap returns the stored response for req or asks the next Snapper.
func (c *Cache) Snap(ctx context.Context, req Request) ([]SnappedPoint, error) {
	key := requestKey(req)

	var body string
	err := c.db.QueryRowContext(ctx, `SELECT response FROM snap_responses WHERE request_key = ?`, key).Scan(&body)
	switch {
	case err == nil:
		var resp []SnappedPoint
		if jerr := json.Unmarshal([]byte(body), &resp); jerr == nil {
			c.hits.Add(1)
			return resp, nil
		}
		log.Printf("[cache] dropping undecodable entry %s", key[:12])
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("snap cache lookup: %w", err)
	}

	c.misses.Add(1)
	resp, err := c.next.Snap(ctx, req)
	if err != nil {
		return nil, err
	}
	buf, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	if _, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO snap_responses (request_key, point_count, interpolate, response) VALUES (?, ?, ?, ?)`,
		key, len(req.Path), boolToInt(req.Interpolate), string(buf),
	); err != nil {
		return nil, fmt.Errorf("snap cache store: %w", err)
	}
	return resp, nil
}

// Stats returns the number of cache hits and misses so far.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of stored responses.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snap_responses`).Scan(&n)
	return n, err
}

// Close closes the database.
func (c *Cache) Close() error { return c.db.Close() }

// requestKey digests the exact request text so that any change in points or
// flags is a different entry.
func requestKey(req Request) string {
	parts := make([]string, 0, len(req.Path)+1)
	parts = append(parts, "interpolate="+strconv.FormatBool(req.Interpolate))
	for _, p := range req.Path {
		parts = append(parts, strconv.FormatFloat(p.Latitude, 'f', -1, 64)+","+strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
