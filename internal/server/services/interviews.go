package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/logging"
	"github.com/Shubham-musmade/interview-tracker/internal/server/config"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/notify"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/repomanager"
)

// InterviewInput creates or edits a round. A zero RoundNumber on create
// means "after the last round"; on update it keeps the current number.
type InterviewInput struct {
	RoundNumber      int                    `json:"round_number" validate:"gte=0"`
	Type             models.InterviewType   `json:"interview_type" validate:"required,enum"`
	InterviewerName  string                 `json:"interviewer_name" validate:"max=100"`
	InterviewerEmail string                 `json:"interviewer_email" validate:"omitempty,email"`
	ScheduledDate    time.Time              `json:"scheduled_date" validate:"required"`
	DurationMinutes  int                    `json:"duration_minutes" validate:"gte=0"`
	Location         string                 `json:"location" validate:"max=200"`
	Status           models.InterviewStatus `json:"status" validate:"omitempty,enum"`
	Feedback         string                 `json:"feedback"`
	Notes            string                 `json:"notes"`
}

// InterviewService manages the interview rounds of a user's applications.
// Every call first checks that the application belongs to the user.
type InterviewService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notifier    Notifier
	logger      logging.Logger
	window      time.Duration
}

func NewInterviewService(db *sql.DB, m repomanager.RepositoryManager, n Notifier, cfg *config.Config, logger logging.Logger) *InterviewService {
	return &InterviewService{
		db:          db,
		repomanager: m,
		notifier:    n,
		logger:      logger.With("module", "interviews"),
		window:      cfg.InterviewReminderWindow,
	}
}

func (s *InterviewService) List(ctx context.Context, userID, applicationID string) ([]models.InterviewRound, error) {
	if _, err := s.repomanager.Applications(s.db).Get(ctx, userID, applicationID); err != nil {
		return nil, err
	}
	return s.repomanager.Interviews(s.db).List(ctx, applicationID)
}

// Add creates a round. A round number already used by the application is
// ErrorAlreadyExists.
func (s *InterviewService) Add(ctx context.Context, userID, applicationID string, in InterviewInput) (*models.InterviewRound, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var r *models.InterviewRound
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Applications(tx).Get(ctx, userID, applicationID); err != nil {
			return err
		}
		repo := s.repomanager.Interviews(tx)
		r = &models.InterviewRound{
			ID:              uuid.NewString(),
			ApplicationID:   applicationID,
			DurationMinutes: models.DefaultInterviewDuration,
			Status:          models.RoundScheduled,
		}
		applyInterviewInput(r, in)
		if r.RoundNumber == 0 {
			last, err := repo.MaxRound(ctx, applicationID)
			if err != nil {
				return err
			}
			r.RoundNumber = last + 1
		}
		return repo.Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *InterviewService) Update(ctx context.Context, userID, applicationID string, round int, in InterviewInput) (*models.InterviewRound, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var r *models.InterviewRound
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Applications(tx).Get(ctx, userID, applicationID); err != nil {
			return err
		}
		repo := s.repomanager.Interviews(tx)
		var err error
		if r, err = repo.Get(ctx, applicationID, round); err != nil {
			return err
		}
		applyInterviewInput(r, in)
		return repo.Update(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *InterviewService) Delete(ctx context.Context, userID, applicationID string, round int) error {
	if _, err := s.repomanager.Applications(s.db).Get(ctx, userID, applicationID); err != nil {
		return err
	}
	return s.repomanager.Interviews(s.db).Delete(ctx, applicationID, round)
}

// Remind emails the user a reminder for one round.
func (s *InterviewService) Remind(ctx context.Context, userID, applicationID string, round int) error {
	c, err := s.repomanager.Applications(s.db).GetContext(ctx, userID, applicationID)
	if err != nil {
		return err
	}
	r, err := s.repomanager.Interviews(s.db).Get(ctx, applicationID, round)
	if err != nil {
		return err
	}
	return s.notifier.InterviewReminder(ctx, *c, *r)
}

// Reminders emails a reminder for every SCHEDULED round starting within the
// configured window after now. It returns the number of emails sent.
func (s *InterviewService) Reminders(ctx context.Context, now time.Time) (int, error) {
	rounds, err := s.repomanager.Interviews(s.db).ListScheduledBetween(ctx, now, now.Add(s.window))
	if err != nil {
		return 0, err
	}

	apps := s.repomanager.Applications(s.db)
	contexts := map[string]*models.ApplicationContext{}
	items := make([]notify.RoundReminder, 0, len(rounds))
	for _, r := range rounds {
		c, ok := contexts[r.ApplicationID]
		if !ok {
			if c, err = apps.GetContext(ctx, "", r.ApplicationID); err != nil {
				s.logger.Warn(ctx, "interview reminder skipped", "application_id", r.ApplicationID, "error", err)
				continue
			}
			contexts[r.ApplicationID] = c
		}
		items = append(items, notify.RoundReminder{Round: r, Application: *c})
	}

	sent := s.notifier.InterviewReminders(ctx, items)
	s.logger.Info(ctx, "interview reminders sent", "candidates", len(items), "sent", sent)
	return sent, nil
}

func applyInterviewInput(r *models.InterviewRound, in InterviewInput) {
	if in.RoundNumber > 0 {
		r.RoundNumber = in.RoundNumber
	}
	r.Type = in.Type
	r.InterviewerName = in.InterviewerName
	r.InterviewerEmail = in.InterviewerEmail
	r.ScheduledDate = in.ScheduledDate
	if in.DurationMinutes > 0 {
		r.DurationMinutes = in.DurationMinutes
	}
	r.Location = in.Location
	if in.Status != "" {
		r.Status = in.Status
	}
	r.Feedback = in.Feedback
	r.Notes = in.Notes
}
