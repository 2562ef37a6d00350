package repomanager

import (
	"context"
	"database/sql"

	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/applications"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/companies"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/documents"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/interviews"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/notes"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/positions"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/refreshtokens"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/useremails"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so one service call
// can use the same *sql.Tx across several repositories.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	UserEmails(db dbx.DBTX) useremails.Repository
	Companies(db dbx.DBTX) companies.Repository
	Positions(db dbx.DBTX) positions.Repository
	Documents(db dbx.DBTX) documents.Repository
	Applications(db dbx.DBTX) applications.Repository
	Interviews(db dbx.DBTX) interviews.Repository
	Notes(db dbx.DBTX) notes.Repository
}
