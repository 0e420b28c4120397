// Package repomanager wires repository constructors and goose migrations for
// each supported database driver.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bioauth/internal/dbx"
	"github.com/dmitrijs2005/bioauth/internal/logging"
	"github.com/dmitrijs2005/bioauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// New returns the manager for a database/sql driver name (see dbx).
// Migration output goes to l; a nil l discards it.
func New(driver string, l logging.Logger) (RepositoryManager, error) {
	switch driver {
	case dbx.DriverPostgres:
		return NewPostgresRepositoryManager(l), nil
	case dbx.DriverSQLite:
		return NewSQLiteRepositoryManager(l), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// gooseLogger forwards goose's printf-style output to a logging.Logger.
type gooseLogger struct {
	ctx    context.Context
	logger logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.logger.Info(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.logger.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func newGooseLogger(ctx context.Context, l logging.Logger) goose.Logger {
	if l == nil {
		return goose.NopLogger()
	}
	return gooseLogger{ctx: ctx, logger: l.With("module", "migrations")}
}

func runMigrations(ctx context.Context, db *sql.DB, l logging.Logger, fsys fs.FS, dialect, dir string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(newGooseLogger(ctx, l))
	defer goose.SetLogger(goose.NopLogger())

	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration dialect: %w", err)
	}
	return gooseUpContext(ctx, db, dir)
}
