// Package wsdlcache keeps fetched service descriptions in sqlite so clients
// do not download the WSDL on every start.
package wsdlcache

import (
	"azlegapi/lib/timezone"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"
)

//go:embed schema.sql
var Schema string

var ErrNotFound = errors.New("wsdl not cached")

type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open connects to the database described by config and ensures the schema
// exists.
func Open(ctx context.Context, config Config) (*Cache, error) {
	ttl, err := config.ttl()
	if err != nil {
		return nil, err
	}
	db, err := config.OpenDB()
	if err != nil {
		return nil, fmt.Errorf("open wsdl cache: %w", err)
	}
	cache, err := New(ctx, db, ttl)
	if err != nil {
		db.Close()
		return nil, err
	}
	return cache, nil
}

// New wraps an existing database.
func New(ctx context.Context, db *sql.DB, ttl time.Duration) (*Cache, error) {
	_, err := db.ExecContext(ctx, Schema)
	if err != nil {
		return nil, fmt.Errorf("create wsdl cache schema: %w", err)
	}
	return &Cache{
		db:  db,
		ttl: ttl,
		now: timezone.Now,
	}, nil
}

func (c *Cache) cutoff() int64 {
	return c.now().Add(-c.ttl).Unix()
}

// Get returns the cached document for url, or ErrNotFound when it is missing
// or older than the ttl.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, error) {
	row := c.db.QueryRowContext(
		ctx,
		"select contents from wsdl_documents where url = ? and fetched_at > ?",
		url, c.cutoff(),
	)
	var contents []byte
	err := row.Scan(&contents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (c *Cache) Set(ctx context.Context, url string, contents []byte) error {
	_, err := c.db.ExecContext(
		ctx,
		`insert into wsdl_documents(url, contents, fetched_at) values (?, ?, ?)
		on conflict(url) do update set contents = excluded.contents, fetched_at = excluded.fetched_at`,
		url, contents, c.now().Unix(),
	)
	return err
}

// Purge removes every expired document and returns how many were removed.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, "delete from wsdl_documents where fetched_at <= ?", c.cutoff())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *Cache) Close() error {
	return c.db.Close()
}
