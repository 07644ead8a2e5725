// Package storage persists uploaded documents and generated presentations.
// Keys are relative paths like "inputs/exam_3f9a2b1c.docx"; the backend
// decides where those keys actually live.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Backend stores and retrieves files by key.
type Backend interface {
	// Save writes r under key and returns the number of bytes written.
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	// Open returns a reader for key along with the content length.
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// uniqueName inserts a short random hex tag before the extension so repeated
// uploads of the same filename never collide.
func uniqueName(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	tag := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%s%s", base, tag, ext)
}

// InputKey returns a fresh storage key for an uploaded document.
func InputKey(filename string) string {
	return path.Join("inputs", uniqueName(filename))
}

// OutputKey returns a fresh storage key for a generated presentation.
func OutputKey(templateType string, jobID uuid.UUID) string {
	return path.Join("outputs", uniqueName(fmt.Sprintf("%s_%s.pptx", templateType, jobID)))
}

// ContentTypeFor maps a stored key to its MIME type.
func ContentTypeFor(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".pptx":
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	default:
		return "application/octet-stream"
	}
}
