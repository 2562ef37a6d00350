package models

import "time"

// Document is an uploaded file. At most one document per (user, type) is the
// default.
type Document struct {
	ID     string       `json:"id"`
	UserID string       `json:"user_id"`
	Name   string       `json:"name"`
	Type   DocumentType `json:"type"`
	// StorageKey locates the file in the document store,
	// e.g. documents/2026/10/<uuid>-resume.pdf.
	StorageKey  string    `json:"storage_key"`
	Description string    `json:"description"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
