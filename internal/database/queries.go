package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/models"
)

type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

const jobColumns = `id, template_type, status, input_name, input_path, input_size,
	output_path, processing_time, error_message, user_ip, user_agent, created_at, updated_at`

func scanJob(row interface{ Scan(...interface{}) error }) (*models.ConversionJob, error) {
	var job models.ConversionJob
	err := row.Scan(
		&job.ID, &job.TemplateType, &job.Status, &job.InputName, &job.InputPath,
		&job.InputSize, &job.OutputPath, &job.ProcessingTime, &job.ErrorMessage,
		&job.UserIP, &job.UserAgent, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) CreateJob(ctx context.Context, job *models.ConversionJob) error {
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO conversion_jobs (id, template_type, status, input_name, input_path, input_size, user_ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, job.ID, job.TemplateType, job.Status, job.InputName, job.InputPath,
		job.InputSize, job.UserIP, job.UserAgent).Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (c *Client) GetJob(ctx context.Context, jobID uuid.UUID) (*models.ConversionJob, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT `+jobColumns+`
		FROM conversion_jobs
		WHERE id = $1
	`, jobID)

	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

func (c *Client) ListJobs(ctx context.Context, filter models.JobFilter) ([]models.ConversionJob, error) {
	query := `SELECT ` + jobColumns + ` FROM conversion_jobs`
	var args []interface{}
	argIndex := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` WHERE status = $%d`, argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.TemplateType != "" {
		if len(args) == 0 {
			query += fmt.Sprintf(` WHERE template_type = $%d`, argIndex)
		} else {
			query += fmt.Sprintf(` AND template_type = $%d`, argIndex)
		}
		args = append(args, filter.TemplateType)
		argIndex++
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.ConversionJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (c *Client) MarkJobProcessing(ctx context.Context, jobID uuid.UUID) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE conversion_jobs
		SET status = $1, updated_at = $2
		WHERE id = $3
	`, models.StatusProcessing, time.Now(), jobID)
	return err
}

func (c *Client) CompleteJob(ctx context.Context, jobID uuid.UUID, outputPath string, seconds float64) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE conversion_jobs
		SET status = $1, output_path = $2, processing_time = $3, updated_at = $4
		WHERE id = $5
	`, models.StatusCompleted, outputPath, seconds, time.Now(), jobID)
	return err
}

func (c *Client) FailJob(ctx context.Context, jobID uuid.UUID, errorMsg string, seconds float64) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE conversion_jobs
		SET status = $1, error_message = $2, processing_time = $3, updated_at = $4
		WHERE id = $5
	`, models.StatusFailed, errorMsg, seconds, time.Now(), jobID)
	return err
}

func (c *Client) ListJobsCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.ConversionJob, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM conversion_jobs
		WHERE created_at < $1
		ORDER BY created_at ASC
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list old jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.ConversionJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (c *Client) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM conversion_jobs
		WHERE id = $1
	`, jobID)
	return err
}

func (c *Client) Close() error {
	return c.db.Close()
}
