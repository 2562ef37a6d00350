// Package notes stores timestamped notes on applications.
package notes

import (
	"context"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

// Repository persists ApplicationNote rows. Update and Delete check
// ownership through the parent application's user.
type Repository interface {
	List(ctx context.Context, applicationID string) ([]models.ApplicationNote, error)
	Create(ctx context.Context, n *models.ApplicationNote) error
	Update(ctx context.Context, userID string, n *models.ApplicationNote) error
	Delete(ctx context.Context, userID, id string) error
}
