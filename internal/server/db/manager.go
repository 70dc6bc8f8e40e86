// Package db owns the lifecycle of the single shared connection handle to
// the backing store. The handle is established lazily on first use with
// bounded retry/backoff, probed with a ping, and memoized afterwards.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/itemvault/internal/common"
	"github.com/dmitrijs2005/itemvault/internal/dbx"
	"github.com/dmitrijs2005/itemvault/internal/logging"
	"github.com/dmitrijs2005/itemvault/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"
)

const (
	initialRetryDelay = 500 * time.Millisecond
	maxRetryDelay     = 5 * time.Second
	pingTimeout       = 5 * time.Second
)

// Manager resolves the active database name at construction time and hands
// out the shared *sql.DB. Concurrent first callers collapse into a single
// connection attempt; retries and backoff run once, not per caller.
type Manager struct {
	dsn      string
	dbName   string
	attempts int
	logger   logging.Logger

	group singleflight.Group
	mu    sync.RWMutex
	db    *sql.DB

	// seams for tests
	open       func(dsn string) (*sql.DB, error)
	ping       func(ctx context.Context, db *sql.DB) error
	migrate    func(ctx context.Context, db *sql.DB) error
	newBackoff func() retry.Backoff
}

// NewManager validates that a database name is resolvable (DSN first,
// configured fallback second) before any query can be attempted. A missing
// name is a fatal configuration error, not retried.
func NewManager(dsn string, fallbackName string, attempts int, logger logging.Logger) (*Manager, error) {
	name, err := resolveDatabaseName(dsn, fallbackName)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		dsn:      dsn,
		dbName:   name,
		attempts: attempts,
		logger:   logger.With("module", "db"),
	}
	m.open = openDB
	m.ping = pingDB
	m.migrate = runMigrations
	m.newBackoff = m.defaultBackoff
	return m, nil
}

// DatabaseName returns the resolved database name.
func (m *Manager) DatabaseName() string {
	return m.dbName
}

// Conn returns the shared connection handle, establishing it on first use.
// Connectivity failures are retried with capped exponential backoff; after
// the bounded attempts are exhausted the manager memoizes an unprobed handle
// so the first real operation surfaces the true connectivity error.
func (m *Manager) Conn(ctx context.Context) (*sql.DB, error) {
	m.mu.RLock()
	db := m.db
	m.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := m.group.Do("conn", func() (interface{}, error) {
		return m.connect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

// Provider adapts the manager to the repositories' connection contract.
// Failures to establish the handle surface as common.ErrorUnavailable.
func (m *Manager) Provider() dbx.Provider {
	return func(ctx context.Context) (dbx.DBTX, error) {
		db, err := m.Conn(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
		}
		return db, nil
	}
}

// Healthy pings the store and reports common.ErrorUnavailable when it does
// not respond. Used by the DB health endpoint.
func (m *Manager) Healthy(ctx context.Context) error {
	db, err := m.Conn(ctx)
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := m.ping(pingCtx, db); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}
	return nil
}

// Close releases the shared handle if one was established.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

func (m *Manager) connect(ctx context.Context) (*sql.DB, error) {
	// a racer may have finished while we waited for the flight
	m.mu.RLock()
	if m.db != nil {
		db := m.db
		m.mu.RUnlock()
		return db, nil
	}
	m.mu.RUnlock()

	var db *sql.DB
	var lastErr, migErr error
	attempt := 0

	err := retry.Do(ctx, m.newBackoff(), func(ctx context.Context) error {
		attempt++

		candidate, err := m.open(m.dsn)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err = m.ping(pingCtx, candidate)
			cancel()
		}
		if err != nil {
			lastErr = err
			if candidate != nil {
				_ = candidate.Close()
			}
			m.logger.Warn(ctx, "store not ready yet", "attempt", attempt, "error", err.Error())
			return retry.RetryableError(err)
		}

		// schema bootstrap; a failure here is not connectivity and is not retried
		if err := m.migrate(ctx, candidate); err != nil {
			_ = candidate.Close()
			migErr = fmt.Errorf("migration error: %w", err)
			return migErr
		}

		db = candidate
		return nil
	})

	if err != nil {
		if ctx.Err() != nil {
			// caller cancelled: do not memoize anything
			return nil, err
		}
		if migErr != nil {
			return nil, migErr
		}

		// retries exhausted: memoize an unprobed last-resort handle so the
		// first real operation reports the true connectivity error
		m.logger.Error(ctx, "store connection failed after retries", "attempts", attempt, "error", lastErr.Error())

		fallback, openErr := m.open(m.dsn)
		if openErr != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorUnavailable, openErr)
		}
		db = fallback
	}

	m.mu.Lock()
	m.db = db
	m.mu.Unlock()

	m.logger.Info(ctx, "store connection established", "database", m.dbName, "probed", err == nil)
	return db, nil
}

func (m *Manager) defaultBackoff() retry.Backoff {
	b := retry.NewExponential(initialRetryDelay)
	b = retry.WithCappedDuration(maxRetryDelay, b)
	b = retry.WithMaxRetries(uint64(m.attempts-1), b)
	return b
}

func openDB(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func pingDB(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// resolveDatabaseName prefers a database name embedded in the DSN and falls
// back to the configured name. Both URL ("postgres://host/name") and keyword
// ("host=... dbname=name") DSN forms are recognized.
func resolveDatabaseName(dsn string, fallback string) (string, error) {
	if name := databaseNameFromDSN(dsn); name != "" {
		return name, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("%w: database name is not set and DSN has no default database", common.ErrorConfiguration)
}

func databaseNameFromDSN(dsn string) string {
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return ""
		}
		return strings.TrimPrefix(u.Path, "/")
	}

	for _, kv := range strings.Fields(dsn) {
		if after, ok := strings.CutPrefix(kv, "dbname="); ok {
			return after
		}
	}
	return ""
}
