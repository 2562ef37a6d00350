// Package companies stores the shared company reference data.
package companies

import (
	"context"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

type Repository interface {
	// List returns companies ordered by name. A non-empty search matches
	// name, industry or location case-insensitively.
	List(ctx context.Context, search string) ([]models.Company, error)
	Get(ctx context.Context, id string) (*models.Company, error)
	// FindByName returns the oldest company with exactly this name.
	FindByName(ctx context.Context, name string) (*models.Company, error)
	Create(ctx context.Context, c *models.Company) error
	Update(ctx context.Context, c *models.Company) error
	// Delete removes the company and, by cascade, its positions and their
	// applications.
	Delete(ctx context.Context, id string) error
}
