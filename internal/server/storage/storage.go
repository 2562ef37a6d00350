// Package storage keeps the bytes of uploaded documents, either on the local
// filesystem or in an S3-compatible bucket. Rows in the documents table only
// hold the storage key.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is a document file store addressed by slash-separated keys.
type Store interface {
	// Save writes r under key, replacing any previous content. size may be
	// -1 when unknown.
	Save(ctx context.Context, key string, r io.Reader, size int64) error
	// Open returns the content of key, or common.ErrorNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// PresignedURL returns a temporary download URL, or "" when the backend
	// cannot issue one and the caller should stream Open instead.
	PresignedURL(ctx context.Context, key string) (string, error)
}

// PresignExpiry is the lifetime of download URLs issued by PresignedURL.
const PresignExpiry = 15 * time.Minute

// NewKey returns a fresh storage key for an upload named filename, bucketed
// by upload month: documents/2026/10/<uuid>-resume.pdf.
func NewKey(now time.Time, filename string) string {
	return fmt.Sprintf("documents/%04d/%02d/%s-%s", now.Year(), int(now.Month()), uuid.NewString(), cleanName(filename))
}

// cleanName reduces an uploaded filename to a safe base name.
func cleanName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
