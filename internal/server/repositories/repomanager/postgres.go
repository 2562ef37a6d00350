// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/migrations"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/applications"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/companies"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/documents"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/interviews"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/notes"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/positions"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/refreshtokens"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/useremails"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) UserEmails(db dbx.DBTX) useremails.Repository {
	return useremails.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Companies(db dbx.DBTX) companies.Repository {
	return companies.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Positions(db dbx.DBTX) positions.Repository {
	return positions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Documents(db dbx.DBTX) documents.Repository {
	return documents.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Applications(db dbx.DBTX) applications.Repository {
	return applications.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Interviews(db dbx.DBTX) interviews.Repository {
	return interviews.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	return notes.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
