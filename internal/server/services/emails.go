package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/repomanager"
)

// EmailInput creates or edits a sender alias. IsActive defaults to true.
type EmailInput struct {
	Email     string           `json:"email" validate:"required,email,max=254"`
	Type      models.EmailType `json:"email_type" validate:"required,enum"`
	Label     string           `json:"label" validate:"max=50"`
	IsPrimary bool             `json:"is_primary"`
	IsActive  *bool            `json:"is_active"`
}

// EmailService manages a user's sender aliases. At most one alias per user
// is primary; setting it on one alias clears it on the others in the same
// transaction.
type EmailService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewEmailService(db *sql.DB, m repomanager.RepositoryManager) *EmailService {
	return &EmailService{db: db, repomanager: m}
}

func (s *EmailService) List(ctx context.Context, userID string) ([]models.UserEmail, error) {
	return s.repomanager.UserEmails(s.db).List(ctx, userID)
}

func (s *EmailService) Create(ctx context.Context, userID string, in EmailInput) (*models.UserEmail, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	e := &models.UserEmail{ID: uuid.NewString(), UserID: userID, IsActive: true}
	applyEmailInput(e, in)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.UserEmails(tx)
		if e.IsPrimary {
			if err := repo.ClaimPrimary(ctx, userID, e.ID); err != nil {
				return err
			}
		}
		return repo.Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EmailService) Update(ctx context.Context, userID, id string, in EmailInput) (*models.UserEmail, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var e *models.UserEmail
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.UserEmails(tx)
		var err error
		if e, err = repo.Get(ctx, userID, id); err != nil {
			return err
		}
		applyEmailInput(e, in)
		if e.IsPrimary {
			if err := repo.ClaimPrimary(ctx, userID, e.ID); err != nil {
				return err
			}
		}
		return repo.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// SetPrimary makes id the user's only primary alias.
func (s *EmailService) SetPrimary(ctx context.Context, userID, id string) (*models.UserEmail, error) {
	var e *models.UserEmail
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.UserEmails(tx)
		var err error
		if e, err = repo.Get(ctx, userID, id); err != nil {
			return err
		}
		if err := repo.ClaimPrimary(ctx, userID, e.ID); err != nil {
			return err
		}
		e.IsPrimary = true
		return repo.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EmailService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.UserEmails(s.db).Delete(ctx, userID, id)
}

func applyEmailInput(e *models.UserEmail, in EmailInput) {
	e.Email = in.Email
	e.Type = in.Type
	e.Label = strings.TrimSpace(in.Label)
	e.IsPrimary = in.IsPrimary
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
}
