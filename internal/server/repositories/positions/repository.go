// Package positions stores job positions posted by companies.
package positions

import (
	"context"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id string) (*models.JobPosition, error)
	// ListByCompany returns the company's positions, newest first.
	ListByCompany(ctx context.Context, companyID string) ([]models.JobPosition, error)
	Create(ctx context.Context, p *models.JobPosition) error
	Update(ctx context.Context, p *models.JobPosition) error
}
