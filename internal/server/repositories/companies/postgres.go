package companies

import (
	"context"

	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

const columns = `id, name, website, location, industry, description, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Company, error) {
	c := &models.Company{}
	if err := s.Scan(&c.ID, &c.Name, &c.Website, &c.Location, &c.Industry, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, search string) ([]models.Company, error) {
	query := `SELECT ` + columns + ` FROM companies
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR industry ILIKE '%' || $1 || '%' OR location ILIKE '%' || $1 || '%'
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, search)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	var out []models.Company
	for rows.Next() {
		c, err := scan(rows)
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

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Company, error) {
	c, err := scan(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return c, nil
}

func (r *PostgresRepository) FindByName(ctx context.Context, name string) (*models.Company, error) {
	query := `SELECT ` + columns + ` FROM companies WHERE name = $1 ORDER BY created_at LIMIT 1`

	c, err := scan(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Company) error {
	query := `INSERT INTO companies (id, name, website, location, industry, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Website, c.Location, c.Industry, c.Description).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	return dbx.MapError(err)
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Company) error {
	query := `UPDATE companies
		SET name = $1, website = $2, location = $3, industry = $4, description = $5, updated_at = now()
		WHERE id = $6
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, c.Name, c.Website, c.Location, c.Industry, c.Description, c.ID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	return dbx.MapError(err)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.ExpectAffected(res)
}
