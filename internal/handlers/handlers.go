// Package handlers implements the HTTP surface: upload-and-convert, job
// status and download, template listing, and the read-only admin views.
package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/models"
)

// JobStore is the subset of the database client the handlers need.
type JobStore interface {
	CreateJob(ctx context.Context, job *models.ConversionJob) error
	GetJob(ctx context.Context, jobID uuid.UUID) (*models.ConversionJob, error)
	ListJobs(ctx context.Context, filter models.JobFilter) ([]models.ConversionJob, error)
}

// Converter runs a conversion job to completion or failure.
type Converter interface {
	Convert(ctx context.Context, job *models.ConversionJob) error
}

// StatusCache reads the mirrored status fields the conversion manager
// writes for a job.
type StatusCache interface {
	Get(ctx context.Context, jobID uuid.UUID) (map[string]string, error)
}
