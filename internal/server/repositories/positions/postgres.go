package positions

import (
	"context"

	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

const columns = `id, company_id, title, description, requirements, employment_type,
	salary_min, salary_max, location, remote_allowed, job_url, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.JobPosition, error) {
	p := &models.JobPosition{}
	err := s.Scan(&p.ID, &p.CompanyID, &p.Title, &p.Description, &p.Requirements, &p.EmploymentType,
		&p.SalaryMin, &p.SalaryMax, &p.Location, &p.RemoteAllowed, &p.JobURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.JobPosition, error) {
	p, err := scan(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM job_positions WHERE id = $1`, id))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return p, nil
}

func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string) ([]models.JobPosition, error) {
	query := `SELECT ` + columns + ` FROM job_positions WHERE company_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	var out []models.JobPosition
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, dbx.MapError(err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return out, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.JobPosition) error {
	query := `INSERT INTO job_positions (id, company_id, title, description, requirements, employment_type,
			salary_min, salary_max, location, remote_allowed, job_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.CompanyID, p.Title, p.Description, p.Requirements, p.EmploymentType,
		p.SalaryMin, p.SalaryMax, p.Location, p.RemoteAllowed, p.JobURL).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	return dbx.MapError(err)
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.JobPosition) error {
	query := `UPDATE job_positions
		SET company_id = $1, title = $2, description = $3, requirements = $4, employment_type = $5,
			salary_min = $6, salary_max = $7, location = $8, remote_allowed = $9, job_url = $10, updated_at = now()
		WHERE id = $11
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.CompanyID, p.Title, p.Description, p.Requirements, p.EmploymentType,
		p.SalaryMin, p.SalaryMax, p.Location, p.RemoteAllowed, p.JobURL, p.ID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	return dbx.MapError(err)
}
