// Package storage owns the node's single embedded Badger instance: the
// durable home for the ledger's credit_entries, credit_spending, and
// credit_grace tables (see internal/services/ledger/ledgerimpl).
package storage

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-pkgz/lgr"
)

//go:generate moq -out storage_mocks.go . Client

// Client owns the database handle's lifecycle.
type Client interface {
	DB() *badger.DB
	Close() error
}

type badgerClient struct {
	db *badger.DB
}

// Open opens a Badger database at path. An empty path opens an in-memory
// instance.
func Open(logger lgr.L, path string) (Client, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(newBadgerLogger(logger))

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database at %q: %w", path, err)
	}
	return &badgerClient{db: db}, nil
}

func (c *badgerClient) DB() *badger.DB { return c.db }
func (c *badgerClient) Close() error   { return c.db.Close() }

// badgerLogger adapts lgr.L to badger's internal Logger interface.
type badgerLogger struct {
	l lgr.L
}

func newBadgerLogger(l lgr.L) *badgerLogger { return &badgerLogger{l: l} }

func (b *badgerLogger) Errorf(format string, args ...interface{})   { b.l.Logf("ERROR "+format, args...) }
func (b *badgerLogger) Warningf(format string, args ...interface{}) { b.l.Logf("WARN "+format, args...) }
func (b *badgerLogger) Infof(format string, args ...interface{})    { b.l.Logf("INFO "+format, args...) }
func (b *badgerLogger) Debugf(format string, args ...interface{})   { b.l.Logf("DEBUG "+format, args...) }
