// Package useremails stores a user's sender aliases.
package useremails

import (
	"context"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

// Repository persists UserEmail rows. Every lookup is scoped by user id;
// rows of other users are reported as common.ErrorNotFound.
type Repository interface {
	List(ctx context.Context, userID string) ([]models.UserEmail, error)
	Get(ctx context.Context, userID, id string) (*models.UserEmail, error)
	Create(ctx context.Context, e *models.UserEmail) error
	Update(ctx context.Context, e *models.UserEmail) error
	Delete(ctx context.Context, userID, id string) error

	// ClaimPrimary clears is_primary on every alias of userID except keepID.
	// It must run inside a transaction.
	ClaimPrimary(ctx context.Context, userID, keepID string) error
}
