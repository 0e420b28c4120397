package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bioauth/internal/dbx"
	"github.com/dmitrijs2005/bioauth/internal/logging"
	"github.com/dmitrijs2005/bioauth/internal/server/migrations"
	"github.com/dmitrijs2005/bioauth/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct {
	logger logging.Logger
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// RunMigrations applies the embedded Postgres migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, m.logger, migrations.Postgres, "pgx", "postgres")
}

func NewPostgresRepositoryManager(l logging.Logger) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{logger: l}
}
