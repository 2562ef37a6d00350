// Package documents stores metadata of uploaded resumes, cover letters and
// other files. The file bytes live in the document store.
package documents

import (
	"context"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

type Repository interface {
	// List returns the user's documents, default first then newest first.
	// An empty docType matches every type.
	List(ctx context.Context, userID string, docType models.DocumentType) ([]models.Document, error)
	Get(ctx context.Context, userID, id string) (*models.Document, error)
	// GetDefault returns the user's default document of docType, or
	// common.ErrorNotFound when there is none.
	GetDefault(ctx context.Context, userID string, docType models.DocumentType) (*models.Document, error)
	Create(ctx context.Context, d *models.Document) error
	Update(ctx context.Context, d *models.Document) error
	Delete(ctx context.Context, userID, id string) error

	// ClaimDefault clears is_default on every document of (userID, docType)
	// except keepID. It must run inside a transaction.
	ClaimDefault(ctx context.Context, userID string, docType models.DocumentType, keepID string) error
}
