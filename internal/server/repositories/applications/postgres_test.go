package applications

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var appCols = []string{
	"id", "user_id", "position_id", "status", "priority", "application_platform", "platform_url",
	"hr_email", "hr_name", "hr_phone", "recruiter_email", "recruiter_name", "applied_date", "deadline",
	"resume_id", "cover_letter_id", "sender_email_id", "notes", "salary_expectation",
	"email_sent", "email_sent_date", "created_at", "updated_at",
}

var ctxCols = append(append([]string{}, appCols...),
	"u_id", "username", "u_email", "full_name", "u_created_at",
	"p_id", "company_id", "title", "p_description", "requirements", "employment_type",
	"salary_min", "salary_max", "p_location", "remote_allowed", "job_url", "p_created_at", "p_updated_at",
	"c_id", "name", "website", "c_location", "industry", "c_description", "c_created_at", "c_updated_at",
)

// passthrough lets slice arguments (text[] parameters) reach the mock as-is.
type passthrough struct{}

func (passthrough) ConvertValue(v any) (driver.Value, error) {
	if dv, err := driver.DefaultParameterConverter.ConvertValue(v); err == nil {
		return dv, nil
	}
	return v, nil
}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.ValueConverterOption(passthrough{}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func appRow(now time.Time, id, status string, resumeID any) []driver.Value {
	return []driver.Value{
		id, "u1", "p1", status, "HIGH", "LINKEDIN", "",
		"hr@acme.io", "Grace", "", "", "", nil, now,
		resumeID, nil, nil, "", nil,
		false, nil, now, now,
	}
}

func ctxRow(now time.Time, id string) []driver.Value {
	return append(appRow(now, id, "APPLIED", nil),
		"u1", "ada", "ada@example.com", "Ada Lovelace", now,
		"p1", "c1", "Backend Engineer", "", "", "FULL_TIME",
		nil, nil, "", false, "", now, now,
		"c1", "Acme", "", "", "Fintech", "", now, now,
	)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	resume := "d1"

	a := &models.JobApplication{ID: "a1", UserID: "u1", PositionID: "p1", Status: models.StatusDraft, Priority: models.PriorityMedium, ResumeID: &resume}
	mock.ExpectQuery(`INSERT INTO job_applications`).
		WithArgs("a1", "u1", "p1", models.StatusDraft, models.PriorityMedium, models.Platform(""),
			"", "", "", "", "", "", nil, nil,
			"d1", nil, nil, "", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, repo.Create(context.Background(), a))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicatePosition(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO job_applications`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "job_applications_user_id_position_id_key"})

	err := repo.Create(context.Background(), &models.JobApplication{ID: "a1"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`FROM job_applications a WHERE a.id = \$1 AND a.user_id = \$2`).
		WithArgs("a1", "u1").
		WillReturnRows(sqlmock.NewRows(appCols).AddRow(appRow(now, "a1", "DRAFT", "d1")...))

	got, err := repo.Get(context.Background(), "u1", "a1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, got.Status)
	require.NotNil(t, got.ResumeID)
	assert.Equal(t, "d1", *got.ResumeID)
	assert.Nil(t, got.CoverLetterID)
	assert.Nil(t, got.AppliedDate)
	require.NotNil(t, got.Deadline)

	mock.ExpectQuery(`FROM job_applications a`).WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "intruder", "a1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet_MalformedIDIsNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM job_applications a`).
		WillReturnError(&pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`})

	_, err := repo.Get(context.Background(), "u1", "abc")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

const markSentQuery = `UPDATE job_applications SET email_sent = true, email_sent_date = \$1, ` +
	`applied_date = CASE WHEN status = \$2 THEN \$3::date ELSE applied_date END, ` +
	`status = CASE WHEN status = \$2 THEN \$4 ELSE status END, updated_at = now\(\) ` +
	`WHERE id = \$5 AND user_id = \$6 RETURNING status, applied_date, updated_at`

func TestMarkSent_TransitionDecidedByStoredRow(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		loaded      models.Status
		stored      models.Status
		storedDate  any
		wantApplied *time.Time
	}{
		{name: "draft becomes applied", loaded: models.StatusDraft, stored: models.StatusApplied, storedDate: today, wantApplied: &today},
		{name: "edited while sending", loaded: models.StatusPhoneScreen, stored: models.StatusRejected, storedDate: earlier, wantApplied: &earlier},
		{name: "stale draft snapshot", loaded: models.StatusDraft, stored: models.StatusWithdrawn, storedDate: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			a := &models.JobApplication{ID: "a1", UserID: "u1", Status: tt.loaded}

			mock.ExpectQuery(markSentQuery).
				WithArgs(now, models.StatusDraft, today, models.StatusApplied, "a1", "u1").
				WillReturnRows(sqlmock.NewRows([]string{"status", "applied_date", "updated_at"}).
					AddRow(string(tt.stored), tt.storedDate, now))

			require.NoError(t, repo.MarkSent(context.Background(), a, now))
			require.NoError(t, mock.ExpectationsWereMet())

			assert.Equal(t, tt.stored, a.Status)
			assert.Equal(t, tt.wantApplied, a.AppliedDate)
			assert.True(t, a.EmailSent)
			require.NotNil(t, a.EmailSentDate)
			assert.Equal(t, now, *a.EmailSentDate)
		})
	}
}

func TestMarkSent_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(markSentQuery).WillReturnError(sql.ErrNoRows)

	err := repo.MarkSent(context.Background(), &models.JobApplication{ID: "a1", UserID: "intruder"}, now)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSaveContacts(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	sender := "e1"

	mock.ExpectExec(`UPDATE job_applications SET sender_email_id = \$1, hr_email = \$2, hr_name = \$3`).
		WithArgs("e1", "hr@acme.io", "Grace", "a1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveContacts(context.Background(), &models.JobApplication{ID: "a1", UserID: "u1", SenderEmailID: &sender, HREmail: "hr@acme.io", HRName: "Grace"})
	require.NoError(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM job_applications WHERE id = \$1 AND user_id = \$2`).
		WithArgs("a1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "u1", "a1"), common.ErrorNotFound)
}

func TestList_Filters(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM job_applications a JOIN job_positions p .* WHERE a.user_id = \$1 .* ORDER BY a.created_at DESC$`).
		WithArgs("u1", "acme", "APPLIED", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "priority", "title", "company_id", "name", "industry", "applied_date", "deadline", "created_at"}).
			AddRow("a1", "APPLIED", "HIGH", "Backend", "c1", "Acme", "", now, nil, now))

	got, err := repo.List(context.Background(), "u1", models.ApplicationFilter{Search: "acme", Status: models.StatusApplied})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].CompanyName)
	assert.Equal(t, "", got[0].Industry)
}

func TestGetContext(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)JOIN users u .* JOIN companies c .* WHERE a.id = \$1 AND \(\$2 = '' OR a.user_id::text = \$2\)`).
		WithArgs("a1", "").
		WillReturnRows(sqlmock.NewRows(ctxCols).AddRow(ctxRow(now, "a1")...))

	got, err := repo.GetContext(context.Background(), "", "a1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.User.DisplayName())
	assert.Equal(t, "Backend Engineer", got.Position.Title)
	assert.Equal(t, "Acme", got.Company.Name)
}

func TestListDeadlineBetween(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	from := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 3)

	mock.ExpectQuery(`(?s)WHERE a.deadline BETWEEN \$1::date AND \$2::date AND NOT \(a.status = ANY\(\$3\)\)`).
		WithArgs(from, to, []string{"ACCEPTED", "REJECTED", "WITHDRAWN"}).
		WillReturnRows(sqlmock.NewRows(ctxCols).
			AddRow(ctxRow(now, "a1")...).
			AddRow(ctxRow(now, "a2")...))

	got, err := repo.ListDeadlineBetween(context.Background(), from, to, models.ClosedStatuses)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a2", got[1].Application.ID)
}
