package converter

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/models"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/storage"
)

// Sidecar converts a document through one of the external template
// converters.
type Sidecar interface {
	Convert(ctx context.Context, templateType, filename string, document io.Reader) (io.ReadCloser, error)
}

// JobStore records job state transitions.
type JobStore interface {
	MarkJobProcessing(ctx context.Context, jobID uuid.UUID) error
	CompleteJob(ctx context.Context, jobID uuid.UUID, outputPath string, seconds float64) error
	FailJob(ctx context.Context, jobID uuid.UUID, errorMsg string, seconds float64) error
}

// Manager runs conversion jobs synchronously: it marks the job processing,
// feeds the stored input through the sidecar, saves the output, and records
// the terminal state with the elapsed time.
type Manager struct {
	sidecar    Sidecar
	store      JobStore
	backend    storage.Backend
	cache      StatusCache
	timeout    time.Duration
	maxRetries int
}

func NewManager(sidecar Sidecar, store JobStore, backend storage.Backend, cache StatusCache, timeout time.Duration, maxRetries int) *Manager {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Manager{
		sidecar:    sidecar,
		store:      store,
		backend:    backend,
		cache:      cache,
		timeout:    timeout,
		maxRetries: maxRetries,
	}
}

// Convert processes job and mutates it in place so callers can respond
// without re-reading the row. It returns an error when the job ends up
// failed; the failure is already persisted by then.
func (m *Manager) Convert(ctx context.Context, job *models.ConversionJob) error {
	startTime := time.Now()

	job.Status = models.StatusProcessing
	if err := m.store.MarkJobProcessing(ctx, job.ID); err != nil {
		log.Printf("Failed to mark job %s processing: %v", job.ID, err)
	}
	m.setStatus(ctx, job.ID, models.StatusProcessing, "", 0)

	if !models.ValidTemplate(job.TemplateType) {
		return m.fail(ctx, job, startTime, fmt.Sprintf("unknown template type: %s", job.TemplateType))
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	outputKey := storage.OutputKey(job.TemplateType, job.ID)

	err := retryWithBackoff(timeoutCtx, func() error {
		return m.runConversion(timeoutCtx, job, outputKey)
	}, m.maxRetries)
	if err != nil {
		m.backend.Remove(ctx, outputKey)
		return m.fail(ctx, job, startTime, fmt.Sprintf("conversion failed: %v", err))
	}

	elapsed := time.Since(startTime).Seconds()
	job.Status = models.StatusCompleted
	job.OutputPath = sql.NullString{String: outputKey, Valid: true}
	job.ProcessingTime = sql.NullFloat64{Float64: elapsed, Valid: true}

	if err := m.store.CompleteJob(ctx, job.ID, outputKey, elapsed); err != nil {
		log.Printf("Failed to mark job %s completed: %v", job.ID, err)
	}
	m.setStatus(ctx, job.ID, models.StatusCompleted, "", elapsed)

	log.Printf("Job %s (%s) completed in %.2fs", job.ID, job.TemplateType, elapsed)
	return nil
}

// runConversion performs a single attempt: open input, convert, save output.
// The input is re-opened on every attempt so retries see the whole document.
// Local storage failures are marked permanent since a retry cannot make a
// missing input appear.
func (m *Manager) runConversion(ctx context.Context, job *models.ConversionJob, outputKey string) error {
	input, _, err := m.backend.Open(ctx, job.InputPath)
	if err != nil {
		return permanent(fmt.Errorf("failed to open input: %w", err))
	}
	defer input.Close()

	output, err := m.sidecar.Convert(ctx, job.TemplateType, job.InputName, input)
	if err != nil {
		return err
	}
	defer output.Close()

	if _, err := m.backend.Save(ctx, outputKey, output); err != nil {
		return permanent(fmt.Errorf("failed to save output: %w", err))
	}
	return nil
}

func (m *Manager) fail(ctx context.Context, job *models.ConversionJob, startTime time.Time, errorMsg string) error {
	elapsed := time.Since(startTime).Seconds()
	job.Status = models.StatusFailed
	job.ErrorMessage = errorMsg
	job.ProcessingTime = sql.NullFloat64{Float64: elapsed, Valid: true}

	if err := m.store.FailJob(ctx, job.ID, errorMsg, elapsed); err != nil {
		log.Printf("Failed to mark job %s failed: %v", job.ID, err)
	}
	m.setStatus(ctx, job.ID, models.StatusFailed, errorMsg, elapsed)

	log.Printf("Job %s (%s) failed: %s", job.ID, job.TemplateType, errorMsg)
	return fmt.Errorf("%s", errorMsg)
}

// setStatus mirrors the job status into the cache so pollers can check
// progress without hitting Postgres. No-op when no cache is configured.
func (m *Manager) setStatus(ctx context.Context, jobID uuid.UUID, status, errorMsg string, seconds float64) {
	if m.cache == nil {
		return
	}

	fields := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().Format(time.RFC3339),
	}
	if errorMsg != "" {
		fields["error"] = errorMsg
	}
	if seconds > 0 {
		fields["processing_time"] = seconds
	}

	if err := m.cache.Set(ctx, jobID, fields); err != nil {
		log.Printf("Failed to update status cache for job %s: %v", jobID, err)
	}
}
