package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/logging"
	"github.com/Shubham-musmade/interview-tracker/internal/server/config"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/notify"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/repomanager"
	"github.com/Shubham-musmade/interview-tracker/internal/timex"
)

// ApplicationInput creates or edits an application. On create, an empty
// status is DRAFT, an empty priority MEDIUM, and a missing resume or cover
// letter is filled from the user's default document of that type.
type ApplicationInput struct {
	PositionID        string          `json:"position_id" validate:"required"`
	Status            models.Status   `json:"status" validate:"omitempty,enum"`
	Priority          models.Priority `json:"priority" validate:"omitempty,enum"`
	Platform          models.Platform `json:"platform" validate:"enum"`
	PlatformURL       string          `json:"platform_url" validate:"omitempty,url"`
	HREmail           string          `json:"hr_email" validate:"omitempty,email"`
	HRName            string          `json:"hr_name" validate:"max=100"`
	HRPhone           string          `json:"hr_phone" validate:"max=20"`
	RecruiterEmail    string          `json:"recruiter_email" validate:"omitempty,email"`
	RecruiterName     string          `json:"recruiter_name" validate:"max=100"`
	AppliedDate       *time.Time      `json:"applied_date"`
	Deadline          *time.Time      `json:"deadline"`
	ResumeID          *string         `json:"resume_id"`
	CoverLetterID     *string         `json:"cover_letter_id"`
	SenderEmailID     *string         `json:"sender_email_id"`
	Notes             string          `json:"notes"`
	SalaryExpectation *float64        `json:"salary_expectation" validate:"omitempty,gte=0"`
}

// QuickApplicationInput creates the company (unless CompanyID names an
// existing one), the position and the application in one transaction.
type QuickApplicationInput struct {
	CompanyID   string           `json:"company_id"`
	Company     *CompanyInput    `json:"company"`
	Position    PositionInput    `json:"position"`
	Application ApplicationInput `json:"application"`
}

// SendEmailInput is a plain application email. Both attachments default to
// on.
type SendEmailInput struct {
	To                string `json:"to_email" validate:"required,email"`
	Cc                string `json:"cc_email" validate:"omitempty,email"`
	Subject           string `json:"subject" validate:"required,max=200"`
	Message           string `json:"message" validate:"required"`
	AttachResume      *bool  `json:"attach_resume"`
	AttachCoverLetter *bool  `json:"attach_cover_letter"`
}

// SendHREmailInput is the templated HR email. SenderEmailID selects one of
// the user's aliases as From.
type SendHREmailInput struct {
	SenderEmailID     string `json:"sender_email_id"`
	To                string `json:"to_email" validate:"required,email"`
	Cc                string `json:"cc_email" validate:"omitempty,email"`
	HRName            string `json:"hr_name" validate:"max=100"`
	Subject           string `json:"subject" validate:"max=200"`
	CustomMessage     string `json:"custom_message"`
	AttachResume      *bool  `json:"attach_resume"`
	AttachCoverLetter *bool  `json:"attach_cover_letter"`
}

// EmailDefaults prefills both send forms.
type EmailDefaults struct {
	notify.EmailDefaults
	SenderEmailID string `json:"sender_email_id"`
	HRName        string `json:"hr_name"`
}

type ApplicationService struct {
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	notifier           Notifier
	logger             logging.Logger
	notifyStatusChange bool
	deadlineDays       int
}

func NewApplicationService(db *sql.DB, m repomanager.RepositoryManager, n Notifier, cfg *config.Config, logger logging.Logger) *ApplicationService {
	return &ApplicationService{
		db:                 db,
		repomanager:        m,
		notifier:           n,
		logger:             logger.With("module", "applications"),
		notifyStatusChange: cfg.NotifyStatusChange,
		deadlineDays:       cfg.DeadlineReminderDays,
	}
}

func (s *ApplicationService) Create(ctx context.Context, userID string, in ApplicationInput) (*models.JobApplication, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var a *models.JobApplication
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		a, err = s.create(ctx, tx, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ApplicationService) CreateWithCompany(ctx context.Context, userID string, in QuickApplicationInput) (*models.JobApplication, error) {
	if in.CompanyID == "" {
		if in.Company == nil || strings.TrimSpace(in.Company.Name) == "" {
			return nil, common.NewValidationError("name", "company name is required when creating a new company")
		}
		in.Company.Name = strings.TrimSpace(in.Company.Name)
		if err := validateInput(*in.Company); err != nil {
			return nil, err
		}
	}
	in.Position.CompanyID = in.CompanyID
	if err := in.Position.check(); err != nil {
		return nil, err
	}
	if err := validateInput(in.Application, "PositionID"); err != nil {
		return nil, err
	}

	var a *models.JobApplication
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if in.CompanyID == "" {
			c := &models.Company{ID: uuid.NewString()}
			applyCompanyInput(c, *in.Company)
			if err := s.repomanager.Companies(tx).Create(ctx, c); err != nil {
				return err
			}
			in.Position.CompanyID = c.ID
		}
		p, err := createPosition(ctx, s.repomanager, tx, in.Position)
		if err != nil {
			return err
		}
		in.Application.PositionID = p.ID
		a, err = s.create(ctx, tx, userID, in.Application)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ApplicationService) create(ctx context.Context, tx dbx.DBTX, userID string, in ApplicationInput) (*models.JobApplication, error) {
	if err := s.checkPosition(ctx, tx, in.PositionID); err != nil {
		return nil, err
	}

	a := &models.JobApplication{
		ID:       uuid.NewString(),
		UserID:   userID,
		Status:   models.StatusDraft,
		Priority: models.PriorityMedium,
	}
	applyApplicationInput(a, in)

	if a.ResumeID == nil {
		d, err := defaultDocument(ctx, s.repomanager, tx, userID, models.DocResume)
		if err != nil {
			return nil, err
		}
		if d != nil {
			a.ResumeID = &d.ID
		}
	}
	if a.CoverLetterID == nil {
		d, err := defaultDocument(ctx, s.repomanager, tx, userID, models.DocCoverLetter)
		if err != nil {
			return nil, err
		}
		if d != nil {
			a.CoverLetterID = &d.ID
		}
	}

	if err := s.checkReferences(ctx, tx, a); err != nil {
		return nil, err
	}
	if err := s.repomanager.Applications(tx).Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get returns the application with its documents, sender alias, interview
// rounds and notes.
func (s *ApplicationService) Get(ctx context.Context, userID, id string) (*models.ApplicationDetail, error) {
	return s.loadDetail(ctx, userID, id)
}

func (s *ApplicationService) List(ctx context.Context, userID string, f models.ApplicationFilter) ([]models.ApplicationSummary, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, common.NewValidationError("status", fmt.Sprintf("%q is not a valid choice", f.Status))
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return nil, common.NewValidationError("priority", fmt.Sprintf("%q is not a valid choice", f.Priority))
	}
	f.Search = strings.TrimSpace(f.Search)
	return s.repomanager.Applications(s.db).List(ctx, userID, f)
}

// Update rewrites the application. When status-change notification is on and
// the status changed, the owner is emailed; a failed notification does not
// fail the update.
func (s *ApplicationService) Update(ctx context.Context, userID, id string, in ApplicationInput) (*models.JobApplication, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var a *models.JobApplication
	var oldStatus models.Status
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Applications(tx)
		var err error
		if a, err = repo.Get(ctx, userID, id); err != nil {
			return err
		}
		oldStatus = a.Status
		if in.PositionID != a.PositionID {
			if err := s.checkPosition(ctx, tx, in.PositionID); err != nil {
				return err
			}
		}
		applyApplicationInput(a, in)
		if err := s.checkReferences(ctx, tx, a); err != nil {
			return err
		}
		return repo.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	if s.notifyStatusChange && a.Status != oldStatus {
		s.notifyStatus(ctx, userID, a.ID, oldStatus, a.Status)
	}
	return a, nil
}

func (s *ApplicationService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Applications(s.db).Delete(ctx, userID, id)
}

// EmailDefaults returns prefilled values for the send forms. The sender is
// the application's saved alias, else the user's primary alias.
func (s *ApplicationService) EmailDefaults(ctx context.Context, userID, id string) (*EmailDefaults, error) {
	c, err := s.repomanager.Applications(s.db).GetContext(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := &EmailDefaults{EmailDefaults: notify.Defaults(*c), HRName: c.Application.HRName}
	if c.Application.SenderEmailID != nil {
		out.SenderEmailID = *c.Application.SenderEmailID
		return out, nil
	}
	aliases, err := s.repomanager.UserEmails(s.db).List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, e := range aliases {
		if e.IsPrimary {
			out.SenderEmailID = e.ID
			break
		}
	}
	return out, nil
}

// SendEmail sends a plain application email and records the send.
func (s *ApplicationService) SendEmail(ctx context.Context, userID, id string, in SendEmailInput) (*models.JobApplication, error) {
	in.To = strings.TrimSpace(in.To)
	in.Cc = strings.TrimSpace(in.Cc)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	detail, err := s.loadDetail(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	err = s.notifier.SendApplicationEmail(ctx, detail, notify.ApplicationEmail{
		To:                in.To,
		Cc:                in.Cc,
		Subject:           in.Subject,
		Body:              in.Message,
		AttachResume:      boolOr(in.AttachResume, true),
		AttachCoverLetter: boolOr(in.AttachCoverLetter, true),
	})
	if err != nil {
		return nil, err
	}
	return s.recordSent(ctx, detail)
}

// SendHREmail saves the chosen sender alias and HR contact on the
// application, then sends the templated HR email and records the send.
func (s *ApplicationService) SendHREmail(ctx context.Context, userID, id string, in SendHREmailInput) (*models.JobApplication, error) {
	in.To = strings.TrimSpace(in.To)
	in.Cc = strings.TrimSpace(in.Cc)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	detail, err := s.loadDetail(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	a := &detail.Application
	detail.Sender = nil
	a.SenderEmailID = nil
	if in.SenderEmailID != "" {
		sender, err := s.repomanager.UserEmails(s.db).Get(ctx, userID, in.SenderEmailID)
		if err != nil {
			if isNotFound(err) {
				return nil, common.NewValidationError("sender_email_id", "unknown sender email")
			}
			return nil, err
		}
		detail.Sender = sender
		a.SenderEmailID = &sender.ID
	}
	a.HREmail = in.To
	a.HRName = strings.TrimSpace(in.HRName)
	if err := s.repomanager.Applications(s.db).SaveContacts(ctx, a); err != nil {
		return nil, err
	}

	err = s.notifier.SendHREmail(ctx, detail, notify.HREmail{
		To:                in.To,
		Cc:                in.Cc,
		Subject:           in.Subject,
		HRName:            a.HRName,
		CustomMessage:     in.CustomMessage,
		AttachResume:      boolOr(in.AttachResume, true),
		AttachCoverLetter: boolOr(in.AttachCoverLetter, true),
	})
	if err != nil {
		return nil, err
	}
	return s.recordSent(ctx, detail)
}

// DeadlineReminders emails owners of open applications whose deadline falls
// within the configured number of days from today. It returns the number of
// emails sent.
func (s *ApplicationService) DeadlineReminders(ctx context.Context, now time.Time) (int, error) {
	from := timex.StartOfDay(now)
	to := from.AddDate(0, 0, s.deadlineDays)

	apps, err := s.repomanager.Applications(s.db).ListDeadlineBetween(ctx, from, to, models.ClosedStatuses)
	if err != nil {
		return 0, err
	}
	sent := s.notifier.DeadlineReminders(ctx, apps)
	s.logger.Info(ctx, "deadline reminders sent", "candidates", len(apps), "sent", sent)
	return sent, nil
}

func (s *ApplicationService) recordSent(ctx context.Context, detail *models.ApplicationDetail) (*models.JobApplication, error) {
	a := &detail.Application
	sentAt := time.Now()
	if a.EmailSentDate != nil {
		sentAt = *a.EmailSentDate
	}
	if err := s.repomanager.Applications(s.db).MarkSent(ctx, a, sentAt); err != nil {
		s.logger.Error(ctx, "email sent but not recorded", "application_id", a.ID, "error", err)
		return nil, err
	}
	return a, nil
}

func (s *ApplicationService) notifyStatus(ctx context.Context, userID, id string, oldStatus, newStatus models.Status) {
	c, err := s.repomanager.Applications(s.db).GetContext(ctx, userID, id)
	if err != nil {
		s.logger.Warn(ctx, "status notification skipped", "application_id", id, "error", err)
		return
	}
	if c.User.Email == "" {
		return
	}
	if err := s.notifier.StatusUpdate(ctx, *c, oldStatus, newStatus); err != nil {
		s.logger.Warn(ctx, "status notification failed", "application_id", id, "error", err)
	}
}

func (s *ApplicationService) loadDetail(ctx context.Context, userID, id string) (*models.ApplicationDetail, error) {
	c, err := s.repomanager.Applications(s.db).GetContext(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	d := &models.ApplicationDetail{ApplicationContext: *c}
	a := c.Application
	docs := s.repomanager.Documents(s.db)

	if a.ResumeID != nil {
		if d.Resume, err = docs.Get(ctx, userID, *a.ResumeID); err != nil && !isNotFound(err) {
			return nil, err
		}
	}
	if a.CoverLetterID != nil {
		if d.CoverLetter, err = docs.Get(ctx, userID, *a.CoverLetterID); err != nil && !isNotFound(err) {
			return nil, err
		}
	}
	if a.SenderEmailID != nil {
		if d.Sender, err = s.repomanager.UserEmails(s.db).Get(ctx, userID, *a.SenderEmailID); err != nil && !isNotFound(err) {
			return nil, err
		}
	}
	if d.Interviews, err = s.repomanager.Interviews(s.db).List(ctx, id); err != nil {
		return nil, err
	}
	if d.Notes, err = s.repomanager.Notes(s.db).List(ctx, id); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *ApplicationService) checkPosition(ctx context.Context, tx dbx.DBTX, positionID string) error {
	if _, err := s.repomanager.Positions(tx).Get(ctx, positionID); err != nil {
		if isNotFound(err) {
			return common.NewValidationError("position_id", "unknown position")
		}
		return err
	}
	return nil
}

// checkReferences verifies that linked documents and the sender alias belong
// to the application's owner and that documents have the right type.
func (s *ApplicationService) checkReferences(ctx context.Context, tx dbx.DBTX, a *models.JobApplication) error {
	docs := s.repomanager.Documents(tx)
	check := func(field string, id *string, want models.DocumentType) error {
		if id == nil {
			return nil
		}
		d, err := docs.Get(ctx, a.UserID, *id)
		if err != nil {
			if isNotFound(err) {
				return common.NewValidationError(field, "unknown document")
			}
			return err
		}
		if d.Type != want {
			return common.NewValidationError(field, fmt.Sprintf("must be a %s document", want.Label()))
		}
		return nil
	}
	if err := check("resume_id", a.ResumeID, models.DocResume); err != nil {
		return err
	}
	if err := check("cover_letter_id", a.CoverLetterID, models.DocCoverLetter); err != nil {
		return err
	}
	if a.SenderEmailID != nil {
		if _, err := s.repomanager.UserEmails(tx).Get(ctx, a.UserID, *a.SenderEmailID); err != nil {
			if isNotFound(err) {
				return common.NewValidationError("sender_email_id", "unknown sender email")
			}
			return err
		}
	}
	return nil
}

func applyApplicationInput(a *models.JobApplication, in ApplicationInput) {
	a.PositionID = in.PositionID
	if in.Status != "" {
		a.Status = in.Status
	}
	if in.Priority != "" {
		a.Priority = in.Priority
	}
	a.Platform = in.Platform
	a.PlatformURL = strings.TrimSpace(in.PlatformURL)
	a.HREmail = strings.TrimSpace(in.HREmail)
	a.HRName = strings.TrimSpace(in.HRName)
	a.HRPhone = strings.TrimSpace(in.HRPhone)
	a.RecruiterEmail = strings.TrimSpace(in.RecruiterEmail)
	a.RecruiterName = strings.TrimSpace(in.RecruiterName)
	a.AppliedDate = in.AppliedDate
	a.Deadline = in.Deadline
	a.ResumeID = blankToNil(in.ResumeID)
	a.CoverLetterID = blankToNil(in.CoverLetterID)
	a.SenderEmailID = blankToNil(in.SenderEmailID)
	a.Notes = in.Notes
	a.SalaryExpectation = in.SalaryExpectation
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
