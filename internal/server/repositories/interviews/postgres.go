package interviews

import (
	"context"
	"time"

	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

const columns = `r.id, r.application_id, r.round_number, r.interview_type, r.interviewer_name, r.interviewer_email,
	r.scheduled_date, r.duration_minutes, r.location, r.status, r.feedback, r.notes, r.created_at, r.updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func roundDest(r *models.InterviewRound) []any {
	return []any{&r.ID, &r.ApplicationID, &r.RoundNumber, &r.Type, &r.InterviewerName, &r.InterviewerEmail,
		&r.ScheduledDate, &r.DurationMinutes, &r.Location, &r.Status, &r.Feedback, &r.Notes, &r.CreatedAt, &r.UpdatedAt}
}

func (p *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.InterviewRound, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	var out []models.InterviewRound
	for rows.Next() {
		var r models.InterviewRound
		if err := rows.Scan(roundDest(&r)...); err != nil {
			return nil, dbx.MapError(err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return out, nil
}

func (p *PostgresRepository) List(ctx context.Context, applicationID string) ([]models.InterviewRound, error) {
	return p.query(ctx, `SELECT `+columns+` FROM interview_rounds r
		WHERE r.application_id = $1
		ORDER BY r.round_number`, applicationID)
}

func (p *PostgresRepository) Get(ctx context.Context, applicationID string, round int) (*models.InterviewRound, error) {
	query := `SELECT ` + columns + ` FROM interview_rounds r WHERE r.application_id = $1 AND r.round_number = $2`

	r := &models.InterviewRound{}
	if err := p.db.QueryRowContext(ctx, query, applicationID, round).Scan(roundDest(r)...); err != nil {
		return nil, dbx.MapError(err)
	}
	return r, nil
}

func (p *PostgresRepository) MaxRound(ctx context.Context, applicationID string) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(round_number), 0) FROM interview_rounds WHERE application_id = $1`, applicationID).Scan(&n)
	if err != nil {
		return 0, dbx.MapError(err)
	}
	return n, nil
}

func (p *PostgresRepository) Create(ctx context.Context, r *models.InterviewRound) error {
	query := `INSERT INTO interview_rounds (id, application_id, round_number, interview_type, interviewer_name,
			interviewer_email, scheduled_date, duration_minutes, location, status, feedback, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := p.db.QueryRowContext(ctx, query,
		r.ID, r.ApplicationID, r.RoundNumber, r.Type, r.InterviewerName,
		r.InterviewerEmail, r.ScheduledDate, r.DurationMinutes, r.Location, r.Status, r.Feedback, r.Notes).
		Scan(&r.CreatedAt, &r.UpdatedAt)
	return dbx.MapError(err)
}

// Update rewrites the round identified by r.ID; its round number may change.
func (p *PostgresRepository) Update(ctx context.Context, r *models.InterviewRound) error {
	query := `UPDATE interview_rounds
		SET round_number = $1, interview_type = $2, interviewer_name = $3, interviewer_email = $4,
			scheduled_date = $5, duration_minutes = $6, location = $7, status = $8, feedback = $9, notes = $10,
			updated_at = now()
		WHERE id = $11 AND application_id = $12
		RETURNING created_at, updated_at`

	err := p.db.QueryRowContext(ctx, query,
		r.RoundNumber, r.Type, r.InterviewerName, r.InterviewerEmail,
		r.ScheduledDate, r.DurationMinutes, r.Location, r.Status, r.Feedback, r.Notes,
		r.ID, r.ApplicationID).
		Scan(&r.CreatedAt, &r.UpdatedAt)
	return dbx.MapError(err)
}

func (p *PostgresRepository) Delete(ctx context.Context, applicationID string, round int) error {
	res, err := p.db.ExecContext(ctx,
		`DELETE FROM interview_rounds WHERE application_id = $1 AND round_number = $2`, applicationID, round)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.ExpectAffected(res)
}

func (p *PostgresRepository) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.InterviewRound, error) {
	return p.query(ctx, `SELECT `+columns+` FROM interview_rounds r
		WHERE r.status = $1 AND r.scheduled_date >= $2 AND r.scheduled_date < $3
		ORDER BY r.scheduled_date`, models.RoundScheduled, from, to)
}

func (p *PostgresRepository) UpcomingForUser(ctx context.Context, userID string, now time.Time, limit int) ([]models.UpcomingInterview, error) {
	query := `SELECT ` + columns + `, pos.title, c.name
		FROM interview_rounds r
		JOIN job_applications a ON a.id = r.application_id
		JOIN job_positions pos ON pos.id = a.position_id
		JOIN companies c ON c.id = pos.company_id
		WHERE a.user_id = $1 AND r.status = $2 AND r.scheduled_date >= $3
		ORDER BY r.scheduled_date
		LIMIT $4`

	rows, err := p.db.QueryContext(ctx, query, userID, models.RoundScheduled, now, limit)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	var out []models.UpcomingInterview
	for rows.Next() {
		var u models.UpcomingInterview
		dest := append(roundDest(&u.Round), &u.PositionTitle, &u.CompanyName)
		if err := rows.Scan(dest...); err != nil {
			return nil, dbx.MapError(err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return out, nil
}
