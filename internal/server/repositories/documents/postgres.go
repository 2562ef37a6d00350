package documents

import (
	"context"

	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

var defaultFlag = dbx.ExclusiveFlag{Table: "documents", Column: "is_default", Scope: []string{"user_id", "document_type"}}

const columns = `id, user_id, name, document_type, storage_key, description, is_default, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Document, error) {
	d := &models.Document{}
	err := s.Scan(&d.ID, &d.UserID, &d.Name, &d.Type, &d.StorageKey, &d.Description, &d.IsDefault, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, docType models.DocumentType) ([]models.Document, error) {
	query := `SELECT ` + columns + ` FROM documents
		WHERE user_id = $1 AND ($2 = '' OR document_type = $2)
		ORDER BY is_default DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, string(docType))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		d, err := scan(rows)
		if err != nil {
			return nil, dbx.MapError(err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Document, error) {
	query := `SELECT ` + columns + ` FROM documents WHERE id = $1 AND user_id = $2`

	d, err := scan(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return d, nil
}

func (r *PostgresRepository) GetDefault(ctx context.Context, userID string, docType models.DocumentType) (*models.Document, error) {
	query := `SELECT ` + columns + ` FROM documents
		WHERE user_id = $1 AND document_type = $2 AND is_default`

	d, err := scan(r.db.QueryRowContext(ctx, query, userID, docType))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return d, nil
}

func (r *PostgresRepository) Create(ctx context.Context, d *models.Document) error {
	query := `INSERT INTO documents (id, user_id, name, document_type, storage_key, description, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		d.ID, d.UserID, d.Name, d.Type, d.StorageKey, d.Description, d.IsDefault).
		Scan(&d.CreatedAt, &d.UpdatedAt)
	return dbx.MapError(err)
}

// Update rewrites the metadata of d. The storage key never changes.
func (r *PostgresRepository) Update(ctx context.Context, d *models.Document) error {
	query := `UPDATE documents
		SET name = $1, document_type = $2, description = $3, is_default = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING storage_key, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		d.Name, d.Type, d.Description, d.IsDefault, d.ID, d.UserID).
		Scan(&d.StorageKey, &d.CreatedAt, &d.UpdatedAt)
	return dbx.MapError(err)
}

// Delete removes the row. Applications referencing it keep existing with a
// NULL reference (ON DELETE SET NULL).
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.ExpectAffected(res)
}

func (r *PostgresRepository) ClaimDefault(ctx context.Context, userID string, docType models.DocumentType, keepID string) error {
	return defaultFlag.Claim(ctx, r.db, keepID, userID, docType)
}
