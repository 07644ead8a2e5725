package handlers_test

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/models"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/storage"
)

type fakeStore struct {
	jobs       map[uuid.UUID]*models.ConversionJob
	listResult []models.ConversionJob
	lastFilter models.JobFilter
	createErr  error
}

func newFakeStore(jobs ...*models.ConversionJob) *fakeStore {
	s := &fakeStore{jobs: make(map[uuid.UUID]*models.ConversionJob)}
	for _, job := range jobs {
		s.jobs[job.ID] = job
	}
	return s
}

func (s *fakeStore) CreateJob(ctx context.Context, job *models.ConversionJob) error {
	if s.createErr != nil {
		return s.createErr
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	s.jobs[job.ID] = job
	return nil
}

func (s *fakeStore) GetJob(ctx context.Context, jobID uuid.UUID) (*models.ConversionJob, error) {
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("failed to get job: %w", sql.ErrNoRows)
	}
	return job, nil
}

func (s *fakeStore) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.ConversionJob, error) {
	s.lastFilter = filter
	return s.listResult, nil
}

// fakeConverter mimics the manager's in-place mutation of the job.
type fakeConverter struct {
	err   error
	calls int
}

func (c *fakeConverter) Convert(ctx context.Context, job *models.ConversionJob) error {
	c.calls++
	if c.err != nil {
		job.Status = models.StatusFailed
		job.ErrorMessage = c.err.Error()
		return c.err
	}
	job.Status = models.StatusCompleted
	job.OutputPath = sql.NullString{String: storage.OutputKey(job.TemplateType, job.ID), Valid: true}
	job.ProcessingTime = sql.NullFloat64{Float64: 0.1, Valid: true}
	return nil
}
