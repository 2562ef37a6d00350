package dbx

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var documentDefault = ExclusiveFlag{
	Table:  "documents",
	Column: "is_default",
	Scope:  []string{"user_id", "document_type"},
}

func TestExclusiveFlag_ClearQuery(t *testing.T) {
	assert.Equal(t,
		"UPDATE documents SET is_default = false, updated_at = now() WHERE is_default AND user_id = $1 AND document_type = $2 AND id <> $3",
		documentDefault.ClearQuery())

	primary := ExclusiveFlag{Table: "user_emails", Column: "is_primary", Scope: []string{"user_id"}}
	assert.Equal(t,
		"UPDATE user_emails SET is_primary = false, updated_at = now() WHERE is_primary AND user_id = $1 AND id <> $2",
		primary.ClearQuery())
}

func TestExclusiveFlag_LockKey(t *testing.T) {
	assert.Equal(t, "documents:is_default:u1:RESUME", documentDefault.LockKey("u1", "RESUME"))
}

func TestExclusiveFlag_Claim_LocksThenClears(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock(hashtext($1))`).
		WithArgs("documents:is_default:u1:RESUME").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(documentDefault.ClearQuery()).
		WithArgs("u1", "RESUME", "d2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return documentDefault.Claim(ctx, tx, "d2", "u1", "RESUME")
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExclusiveFlag_Claim_ScopeMismatch(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = documentDefault.Claim(context.Background(), db, "d2", "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 2 scope values, got 1")
}

func TestExclusiveFlag_Claim_LockError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`SELECT pg_advisory_xact_lock(hashtext($1))`).
		WillReturnError(errors.New("conn reset"))

	err = documentDefault.Claim(context.Background(), db, "d2", "u1", "RESUME")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock error: conn reset")
}

func TestExclusiveFlag_Claim_UpdateError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`SELECT pg_advisory_xact_lock(hashtext($1))`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(documentDefault.ClearQuery()).
		WillReturnError(errors.New("deadlock"))

	err = documentDefault.Claim(context.Background(), db, "d2", "u1", "RESUME")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: deadlock")
}
