package applications

import (
	"context"
	"time"

	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/timex"
)

const columns = `a.id, a.user_id, a.position_id, a.status, a.priority, a.application_platform, a.platform_url,
	a.hr_email, a.hr_name, a.hr_phone, a.recruiter_email, a.recruiter_name, a.applied_date, a.deadline,
	a.resume_id, a.cover_letter_id, a.sender_email_id, a.notes, a.salary_expectation,
	a.email_sent, a.email_sent_date, a.created_at, a.updated_at`

const contextColumns = columns + `,
	u.id, u.username, u.email, u.full_name, u.created_at,
	p.id, p.company_id, p.title, p.description, p.requirements, p.employment_type,
	p.salary_min, p.salary_max, p.location, p.remote_allowed, p.job_url, p.created_at, p.updated_at,
	c.id, c.name, c.website, c.location, c.industry, c.description, c.created_at, c.updated_at`

const contextFrom = ` FROM job_applications a
	JOIN users u ON u.id = a.user_id
	JOIN job_positions p ON p.id = a.position_id
	JOIN companies c ON c.id = p.company_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func applicationDest(a *models.JobApplication) []any {
	return []any{
		&a.ID, &a.UserID, &a.PositionID, &a.Status, &a.Priority, &a.Platform, &a.PlatformURL,
		&a.HREmail, &a.HRName, &a.HRPhone, &a.RecruiterEmail, &a.RecruiterName, &a.AppliedDate, &a.Deadline,
		&a.ResumeID, &a.CoverLetterID, &a.SenderEmailID, &a.Notes, &a.SalaryExpectation,
		&a.EmailSent, &a.EmailSentDate, &a.CreatedAt, &a.UpdatedAt,
	}
}

func scanContext(s scanner) (*models.ApplicationContext, error) {
	c := &models.ApplicationContext{}
	u, p, co := &c.User, &c.Position, &c.Company
	dest := applicationDest(&c.Application)
	dest = append(dest,
		&u.ID, &u.UserName, &u.Email, &u.FullName, &u.CreatedAt,
		&p.ID, &p.CompanyID, &p.Title, &p.Description, &p.Requirements, &p.EmploymentType,
		&p.SalaryMin, &p.SalaryMax, &p.Location, &p.RemoteAllowed, &p.JobURL, &p.CreatedAt, &p.UpdatedAt,
		&co.ID, &co.Name, &co.Website, &co.Location, &co.Industry, &co.Description, &co.CreatedAt, &co.UpdatedAt,
	)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.JobApplication) error {
	query := `INSERT INTO job_applications (id, user_id, position_id, status, priority, application_platform,
			platform_url, hr_email, hr_name, hr_phone, recruiter_email, recruiter_name, applied_date, deadline,
			resume_id, cover_letter_id, sender_email_id, notes, salary_expectation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.UserID, a.PositionID, a.Status, a.Priority, a.Platform,
		a.PlatformURL, a.HREmail, a.HRName, a.HRPhone, a.RecruiterEmail, a.RecruiterName, a.AppliedDate, a.Deadline,
		a.ResumeID, a.CoverLetterID, a.SenderEmailID, a.Notes, a.SalaryExpectation).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	return dbx.MapError(err)
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.JobApplication, error) {
	query := `SELECT ` + columns + ` FROM job_applications a WHERE a.id = $1 AND a.user_id = $2`

	a := &models.JobApplication{}
	if err := r.db.QueryRowContext(ctx, query, id, userID).Scan(applicationDest(a)...); err != nil {
		return nil, dbx.MapError(err)
	}
	return a, nil
}

func (r *PostgresRepository) Update(ctx context.Context, a *models.JobApplication) error {
	query := `UPDATE job_applications
		SET position_id = $1, status = $2, priority = $3, application_platform = $4, platform_url = $5,
			hr_email = $6, hr_name = $7, hr_phone = $8, recruiter_email = $9, recruiter_name = $10,
			applied_date = $11, deadline = $12, resume_id = $13, cover_letter_id = $14, sender_email_id = $15,
			notes = $16, salary_expectation = $17, updated_at = now()
		WHERE id = $18 AND user_id = $19
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		a.PositionID, a.Status, a.Priority, a.Platform, a.PlatformURL,
		a.HREmail, a.HRName, a.HRPhone, a.RecruiterEmail, a.RecruiterName,
		a.AppliedDate, a.Deadline, a.ResumeID, a.CoverLetterID, a.SenderEmailID,
		a.Notes, a.SalaryExpectation, a.ID, a.UserID).
		Scan(&a.UpdatedAt)
	return dbx.MapError(err)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM job_applications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.ExpectAffected(res)
}

// MarkSent decides the DRAFT -> APPLIED move against the stored row, so a
// status edited while the mail was in flight is kept. The resulting status,
// applied date and timestamps are scanned back into a.
func (r *PostgresRepository) MarkSent(ctx context.Context, a *models.JobApplication, sentAt time.Time) error {
	query := `UPDATE job_applications
		SET email_sent = true, email_sent_date = $1,
			applied_date = CASE WHEN status = $2 THEN $3::date ELSE applied_date END,
			status = CASE WHEN status = $2 THEN $4 ELSE status END,
			updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING status, applied_date, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		sentAt, models.StatusDraft, timex.StartOfDay(sentAt), models.StatusApplied, a.ID, a.UserID).
		Scan(&a.Status, &a.AppliedDate, &a.UpdatedAt)
	if err != nil {
		return dbx.MapError(err)
	}
	a.EmailSent = true
	a.EmailSentDate = &sentAt
	return nil
}

func (r *PostgresRepository) SaveContacts(ctx context.Context, a *models.JobApplication) error {
	query := `UPDATE job_applications
		SET sender_email_id = $1, hr_email = $2, hr_name = $3, updated_at = now()
		WHERE id = $4 AND user_id = $5`

	res, err := r.db.ExecContext(ctx, query, a.SenderEmailID, a.HREmail, a.HRName, a.ID, a.UserID)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.ExpectAffected(res)
}

func (r *PostgresRepository) List(ctx context.Context, userID string, f models.ApplicationFilter) ([]models.ApplicationSummary, error) {
	query := `SELECT a.id, a.status, a.priority, p.title, c.id, c.name, c.industry, a.applied_date, a.deadline, a.created_at
		FROM job_applications a
		JOIN job_positions p ON p.id = a.position_id
		JOIN companies c ON c.id = p.company_id
		WHERE a.user_id = $1
			AND ($2 = '' OR p.title ILIKE '%' || $2 || '%' OR c.name ILIKE '%' || $2 || '%' OR a.notes ILIKE '%' || $2 || '%')
			AND ($3 = '' OR a.status = $3)
			AND ($4 = '' OR a.priority = $4)
		ORDER BY a.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, f.Search, string(f.Status), string(f.Priority))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	var out []models.ApplicationSummary
	for rows.Next() {
		var s models.ApplicationSummary
		if err := rows.Scan(&s.ID, &s.Status, &s.Priority, &s.PositionTitle, &s.CompanyID, &s.CompanyName, &s.Industry,
			&s.AppliedDate, &s.Deadline, &s.CreatedAt); err != nil {
			return nil, dbx.MapError(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return out, nil
}

func (r *PostgresRepository) GetContext(ctx context.Context, userID, id string) (*models.ApplicationContext, error) {
	query := `SELECT ` + contextColumns + contextFrom + ` WHERE a.id = $1 AND ($2 = '' OR a.user_id::text = $2)`

	c, err := scanContext(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return c, nil
}

func (r *PostgresRepository) ListDeadlineBetween(ctx context.Context, from, to time.Time, exclude []models.Status) ([]models.ApplicationContext, error) {
	codes := make([]string, len(exclude))
	for i, s := range exclude {
		codes[i] = string(s)
	}

	query := `SELECT ` + contextColumns + contextFrom + `
		WHERE a.deadline BETWEEN $1::date AND $2::date
			AND NOT (a.status = ANY($3))
		ORDER BY a.deadline, a.created_at`

	rows, err := r.db.QueryContext(ctx, query, from, to, codes)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	var out []models.ApplicationContext
	for rows.Next() {
		c, err := scanContext(rows)
		if err != nil {
			return nil, dbx.MapError(err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return out, nil
}
