// Package applications stores job applications and their read projections.
package applications

import (
	"context"
	"time"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.JobApplication) error
	Get(ctx context.Context, userID, id string) (*models.JobApplication, error)
	// Update rewrites every user-editable field of a.
	Update(ctx context.Context, a *models.JobApplication) error
	Delete(ctx context.Context, userID, id string) error

	// MarkSent records a successful send at sentAt. A stored DRAFT becomes
	// APPLIED with the send date; any other stored status is left alone.
	MarkSent(ctx context.Context, a *models.JobApplication, sentAt time.Time) error
	// SaveContacts persists the sender alias and HR contact used by an HR send.
	SaveContacts(ctx context.Context, a *models.JobApplication) error

	// List returns summaries of the user's applications, newest first.
	List(ctx context.Context, userID string, f models.ApplicationFilter) ([]models.ApplicationSummary, error)

	// GetContext loads the application with its owner, position and company.
	// An empty userID skips the ownership filter (batch jobs).
	GetContext(ctx context.Context, userID, id string) (*models.ApplicationContext, error)
	// ListDeadlineBetween returns open applications whose deadline falls in
	// [from, to], excluding the given statuses.
	ListDeadlineBetween(ctx context.Context, from, to time.Time, exclude []models.Status) ([]models.ApplicationContext, error)
}
