// Package cleanup deletes conversion jobs and their files once they pass
// the retention window.
package cleanup

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/models"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/storage"
)

// Store is the subset of the database client the cleanup needs.
type Store interface {
	ListJobsCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.ConversionJob, error)
	DeleteJob(ctx context.Context, jobID uuid.UUID) error
}

// StatusCache removes the cached status entry for a deleted job so pollers
// stop seeing a job that no longer exists.
type StatusCache interface {
	Remove(ctx context.Context, jobID uuid.UUID) error
}

type Service struct {
	store   Store
	backend storage.Backend
	cache   StatusCache
	out     io.Writer
}

func NewService(store Store, backend storage.Backend, cache StatusCache, out io.Writer) *Service {
	return &Service{store: store, backend: backend, cache: cache, out: out}
}

// Run deletes every job older than days, along with its stored files, and
// returns the number of jobs deleted. With dryRun it only reports what
// would be deleted.
func (s *Service) Run(ctx context.Context, days int, dryRun bool) (int, error) {
	cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)

	oldJobs, err := s.store.ListJobsCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list old jobs: %w", err)
	}

	if len(oldJobs) == 0 {
		fmt.Fprintln(s.out, "No old conversion jobs found.")
		return 0, nil
	}

	if dryRun {
		fmt.Fprintf(s.out, "DRY RUN: Would delete %d conversion job(s) older than %d day(s).\n",
			len(oldJobs), days)
		for i, job := range oldJobs {
			if i == 10 {
				fmt.Fprintf(s.out, "  ... and %d more\n", len(oldJobs)-10)
				break
			}
			fmt.Fprintf(s.out, "  - Job %s: %s\n", job.ID, job.CreatedAt.Format(time.RFC3339))
		}
		return 0, nil
	}

	deleted := 0
	for _, job := range oldJobs {
		if err := s.deleteJob(ctx, &job); err != nil {
			fmt.Fprintf(s.out, "Error deleting job %s: %v\n", job.ID, err)
			continue
		}
		deleted++
	}

	fmt.Fprintf(s.out, "Successfully deleted %d old conversion job(s).\n", deleted)
	return deleted, nil
}

func (s *Service) deleteJob(ctx context.Context, job *models.ConversionJob) error {
	if err := s.backend.Remove(ctx, job.InputPath); err != nil {
		return err
	}
	if job.OutputPath.Valid {
		if err := s.backend.Remove(ctx, job.OutputPath.String); err != nil {
			return err
		}
	}
	if err := s.store.DeleteJob(ctx, job.ID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Remove(ctx, job.ID); err != nil {
			// the entry expires on its own; the row and files are gone
			fmt.Fprintf(s.out, "Error clearing status cache for job %s: %v\n", job.ID, err)
		}
	}
	return nil
}
