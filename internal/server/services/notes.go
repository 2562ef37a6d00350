package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/repomanager"
)

type NoteInput struct {
	Note string `json:"note" validate:"required"`
}

type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// List returns the application's notes, newest first.
func (s *NoteService) List(ctx context.Context, userID, applicationID string) ([]models.ApplicationNote, error) {
	if _, err := s.repomanager.Applications(s.db).Get(ctx, userID, applicationID); err != nil {
		return nil, err
	}
	return s.repomanager.Notes(s.db).List(ctx, applicationID)
}

func (s *NoteService) Add(ctx context.Context, userID, applicationID string, in NoteInput) (*models.ApplicationNote, error) {
	in.Note = strings.TrimSpace(in.Note)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Applications(s.db).Get(ctx, userID, applicationID); err != nil {
		return nil, err
	}
	n := &models.ApplicationNote{ID: uuid.NewString(), ApplicationID: applicationID, Note: in.Note}
	if err := s.repomanager.Notes(s.db).Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Update edits the note in place. Notes of other users' applications are
// ErrorNotFound.
func (s *NoteService) Update(ctx context.Context, userID, id string, in NoteInput) (*models.ApplicationNote, error) {
	in.Note = strings.TrimSpace(in.Note)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	n := &models.ApplicationNote{ID: id, Note: in.Note}
	if err := s.repomanager.Notes(s.db).Update(ctx, userID, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Notes(s.db).Delete(ctx, userID, id)
}
