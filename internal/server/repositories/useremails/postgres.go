package useremails

import (
	"context"

	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

var primaryFlag = dbx.ExclusiveFlag{Table: "user_emails", Column: "is_primary", Scope: []string{"user_id"}}

const columns = `id, user_id, email, email_type, label, is_primary, is_active, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.UserEmail, error) {
	e := &models.UserEmail{}
	err := s.Scan(&e.ID, &e.UserID, &e.Email, &e.Type, &e.Label, &e.IsPrimary, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.UserEmail, error) {
	query := `SELECT ` + columns + ` FROM user_emails
		WHERE user_id = $1
		ORDER BY is_primary DESC, email_type, label`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	var out []models.UserEmail
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, dbx.MapError(err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.UserEmail, error) {
	query := `SELECT ` + columns + ` FROM user_emails WHERE id = $1 AND user_id = $2`

	e, err := scan(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.UserEmail) error {
	query := `INSERT INTO user_emails (id, user_id, email, email_type, label, is_primary, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		e.ID, e.UserID, e.Email, e.Type, e.Label, e.IsPrimary, e.IsActive).
		Scan(&e.CreatedAt, &e.UpdatedAt)
	return dbx.MapError(err)
}

func (r *PostgresRepository) Update(ctx context.Context, e *models.UserEmail) error {
	query := `UPDATE user_emails
		SET email = $1, email_type = $2, label = $3, is_primary = $4, is_active = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		e.Email, e.Type, e.Label, e.IsPrimary, e.IsActive, e.ID, e.UserID).
		Scan(&e.CreatedAt, &e.UpdatedAt)
	return dbx.MapError(err)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_emails WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.ExpectAffected(res)
}

func (r *PostgresRepository) ClaimPrimary(ctx context.Context, userID, keepID string) error {
	return primaryFlag.Claim(ctx, r.db, keepID, userID)
}
