package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/Shubham-musmade/interview-tracker/internal/dbx"
	"github.com/Shubham-musmade/interview-tracker/internal/logging"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/notify"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/repomanager"
	"github.com/Shubham-musmade/interview-tracker/internal/server/storage"
)

type DocumentInput struct {
	Name        string              `json:"name" validate:"required,max=200"`
	Type        models.DocumentType `json:"document_type" validate:"required,enum"`
	Description string              `json:"description"`
	IsDefault   bool                `json:"is_default"`
}

// UploadFile is the content of an uploaded document. Size may be -1.
type UploadFile struct {
	Filename string
	Body     io.Reader
	Size     int64
}

// Download is either a presigned URL or an open stream of the file.
type Download struct {
	Document *models.Document
	FileName string
	URL      string
	Body     io.ReadCloser
}

// DocumentService manages uploaded documents. At most one document per
// (user, type) is the default.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.Store
	logger      logging.Logger
	now         func() time.Time
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, store storage.Store, logger logging.Logger) *DocumentService {
	return &DocumentService{
		db:          db,
		repomanager: m,
		store:       store,
		logger:      logger.With("module", "documents"),
		now:         time.Now,
	}
}

func (s *DocumentService) List(ctx context.Context, userID string, docType models.DocumentType) ([]models.Document, error) {
	if docType != "" && !docType.Valid() {
		return nil, common.NewValidationError("type", fmt.Sprintf("%q is not a valid choice", docType))
	}
	return s.repomanager.Documents(s.db).List(ctx, userID, docType)
}

func (s *DocumentService) Get(ctx context.Context, userID, id string) (*models.Document, error) {
	return s.repomanager.Documents(s.db).Get(ctx, userID, id)
}

// Upload stores the file under documents/YYYY/MM/ and records it. The stored
// file is removed again when the row cannot be written.
func (s *DocumentService) Upload(ctx context.Context, userID string, in DocumentInput, f UploadFile) (*models.Document, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if f.Body == nil || f.Filename == "" {
		return nil, common.NewValidationError("file", "is required")
	}

	key := storage.NewKey(s.now(), f.Filename)
	if err := s.store.Save(ctx, key, f.Body, f.Size); err != nil {
		return nil, fmt.Errorf("save document file: %w", err)
	}

	d := &models.Document{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        in.Name,
		Type:        in.Type,
		StorageKey:  key,
		Description: in.Description,
		IsDefault:   in.IsDefault,
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Documents(tx)
		if d.IsDefault {
			if err := repo.ClaimDefault(ctx, userID, d.Type, d.ID); err != nil {
				return err
			}
		}
		return repo.Create(ctx, d)
	})
	if err != nil {
		s.removeFile(ctx, key)
		return nil, err
	}
	s.logger.Info(ctx, "document uploaded", "document_id", d.ID, "type", d.Type, "key", key)
	return d, nil
}

// Update edits the document's metadata. The file itself is not replaced.
func (s *DocumentService) Update(ctx context.Context, userID, id string, in DocumentInput) (*models.Document, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var d *models.Document
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Documents(tx)
		var err error
		if d, err = repo.Get(ctx, userID, id); err != nil {
			return err
		}
		d.Name = in.Name
		d.Type = in.Type
		d.Description = in.Description
		d.IsDefault = in.IsDefault
		if d.IsDefault {
			if err := repo.ClaimDefault(ctx, userID, d.Type, d.ID); err != nil {
				return err
			}
		}
		return repo.Update(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the document row; applications referencing it lose the
// link. The stored file is removed on a best-effort basis.
func (s *DocumentService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Documents(s.db)
	d, err := repo.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.removeFile(ctx, d.StorageKey)
	return nil
}

// Default returns the user's default document of docType, or nil.
func (s *DocumentService) Default(ctx context.Context, userID string, docType models.DocumentType) (*models.Document, error) {
	return defaultDocument(ctx, s.repomanager, s.db, userID, docType)
}

// Download returns a presigned URL when the store issues one and an open
// stream otherwise. The caller closes Body.
func (s *DocumentService) Download(ctx context.Context, userID, id string) (*Download, error) {
	d, err := s.repomanager.Documents(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := &Download{Document: d, FileName: notify.AttachmentName(d.StorageKey)}

	url, err := s.store.PresignedURL(ctx, d.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("presign document: %w", err)
	}
	if url != "" {
		out.URL = url
		return out, nil
	}

	body, err := s.store.Open(ctx, d.StorageKey)
	if err != nil {
		return nil, err
	}
	out.Body = body
	return out, nil
}

func (s *DocumentService) removeFile(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn(ctx, "document file cleanup failed", "key", key, "error", err)
	}
}

func defaultDocument(ctx context.Context, rm repomanager.RepositoryManager, db dbx.DBTX, userID string, docType models.DocumentType) (*models.Document, error) {
	d, err := rm.Documents(db).GetDefault(ctx, userID, docType)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}
