package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bioauth/internal/dbx"
	"github.com/dmitrijs2005/bioauth/internal/logging"
	"github.com/dmitrijs2005/bioauth/internal/server/migrations"
	"github.com/dmitrijs2005/bioauth/internal/server/repositories/users"
)

// SQLiteRepositoryManager vends SQLite-backed repositories. Used for local
// development and integration tests.
type SQLiteRepositoryManager struct {
	logger logging.Logger
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

// RunMigrations applies the embedded SQLite migrations.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, m.logger, migrations.SQLite, "sqlite3", "sqlite")
}

func NewSQLiteRepositoryManager(l logging.Logger) *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{logger: l}
}
