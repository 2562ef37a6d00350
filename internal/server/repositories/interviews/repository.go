// Package interviews stores the ordered interview rounds of applications.
package interviews

import (
	"context"
	"time"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

// Repository persists InterviewRound rows. Ownership is checked by the
// caller through the parent application.
type Repository interface {
	List(ctx context.Context, applicationID string) ([]models.InterviewRound, error)
	Get(ctx context.Context, applicationID string, round int) (*models.InterviewRound, error)
	// MaxRound returns the highest round number of the application, 0 if none.
	MaxRound(ctx context.Context, applicationID string) (int, error)
	Create(ctx context.Context, r *models.InterviewRound) error
	Update(ctx context.Context, r *models.InterviewRound) error
	Delete(ctx context.Context, applicationID string, round int) error

	// ListScheduledBetween returns SCHEDULED rounds whose scheduled date is in
	// [from, to), earliest first.
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.InterviewRound, error)
	// UpcomingForUser returns the user's next SCHEDULED rounds after now.
	UpcomingForUser(ctx context.Context, userID string, now time.Time, limit int) ([]models.UpcomingInterview, error)
}
