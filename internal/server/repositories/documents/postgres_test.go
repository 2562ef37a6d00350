package documents

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{"id", "user_id", "name", "document_type", "storage_key", "description", "is_default", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestList_TypeFilter(t *testing.T) {
	tests := []struct {
		name    string
		docType models.DocumentType
		arg     string
	}{
		{name: "all types", docType: "", arg: ""},
		{name: "resumes only", docType: models.DocResume, arg: "RESUME"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			now := time.Now()

			mock.ExpectQuery(`(?s)FROM documents WHERE user_id = \$1 AND \(\$2 = '' OR document_type = \$2\) ORDER BY is_default DESC, created_at DESC`).
				WithArgs("u1", tt.arg).
				WillReturnRows(sqlmock.NewRows(cols).
					AddRow("d1", "u1", "CV", "RESUME", "documents/2026/10/x-cv.pdf", "", true, now, now))

			got, err := repo.List(context.Background(), "u1", tt.docType)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, models.DocResume, got[0].Type)
			assert.Equal(t, "documents/2026/10/x-cv.pdf", got[0].StorageKey)
		})
	}
}

func TestGetDefault_None(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM documents WHERE user_id = \$1 AND document_type = \$2 AND is_default`).
		WithArgs("u1", models.DocCoverLetter).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetDefault(context.Background(), "u1", models.DocCoverLetter)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreateAndUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	d := &models.Document{ID: "d1", UserID: "u1", Name: "CV", Type: models.DocResume, StorageKey: "documents/2026/10/k-cv.pdf", IsDefault: true}
	mock.ExpectQuery(`INSERT INTO documents`).
		WithArgs("d1", "u1", "CV", models.DocResume, "documents/2026/10/k-cv.pdf", "", true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	require.NoError(t, repo.Create(context.Background(), d))

	upd := &models.Document{ID: "d1", UserID: "u1", Name: "CV 2026", Type: models.DocResume, Description: "backend", IsDefault: false}
	mock.ExpectQuery(`(?s)UPDATE documents SET name = \$1, document_type = \$2, description = \$3, is_default = \$4, updated_at = now\(\) WHERE id = \$5 AND user_id = \$6 RETURNING storage_key`).
		WithArgs("CV 2026", models.DocResume, "backend", false, "d1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"storage_key", "created_at", "updated_at"}).AddRow("documents/2026/10/k-cv.pdf", now, now))
	require.NoError(t, repo.Update(context.Background(), upd))
	assert.Equal(t, "documents/2026/10/k-cv.pdf", upd.StorageKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotOwned(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM documents WHERE id = \$1 AND user_id = \$2`).
		WithArgs("d1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "intruder", "d1"), common.ErrorNotFound)
}

func TestClaimDefault_ScopedByUserAndType(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs("documents:is_default:u1:RESUME").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE documents SET is_default = false, updated_at = now\(\) WHERE is_default AND user_id = \$1 AND document_type = \$2 AND id <> \$3`).
		WithArgs("u1", models.DocResume, "d2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ClaimDefault(context.Background(), "u1", models.DocResume, "d2"))
	require.NoError(t, mock.ExpectationsWereMet())
}
