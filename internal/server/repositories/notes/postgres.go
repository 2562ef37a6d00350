package notes

import (
	"context"

	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, applicationID string) ([]models.ApplicationNote, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, application_id, note, created_at, updated_at
		FROM application_notes
		WHERE application_id = $1
		ORDER BY created_at DESC`, applicationID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	var out []models.ApplicationNote
	for rows.Next() {
		var n models.ApplicationNote
		if err := rows.Scan(&n.ID, &n.ApplicationID, &n.Note, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, dbx.MapError(err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return out, nil
}

func (r *PostgresRepository) Create(ctx context.Context, n *models.ApplicationNote) error {
	err := r.db.QueryRowContext(ctx, `INSERT INTO application_notes (id, application_id, note)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`, n.ID, n.ApplicationID, n.Note).
		Scan(&n.CreatedAt, &n.UpdatedAt)
	return dbx.MapError(err)
}

func (r *PostgresRepository) Update(ctx context.Context, userID string, n *models.ApplicationNote) error {
	query := `UPDATE application_notes n
		SET note = $1, updated_at = now()
		FROM job_applications a
		WHERE n.id = $2 AND a.id = n.application_id AND a.user_id = $3
		RETURNING n.application_id, n.created_at, n.updated_at`

	err := r.db.QueryRowContext(ctx, query, n.Note, n.ID, userID).
		Scan(&n.ApplicationID, &n.CreatedAt, &n.UpdatedAt)
	return dbx.MapError(err)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM application_notes n
		USING job_applications a
		WHERE n.id = $1 AND a.id = n.application_id AND a.user_id = $2`, id, userID)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.ExpectAffected(res)
}
