package models

import "time"

type JobResponse struct {
	JobID          string    `json:"job_id"`
	TemplateType   string    `json:"template_type"`
	TemplateLabel  string    `json:"template_label"`
	Status         string    `json:"status"`
	InputFilename  string    `json:"input_filename"`
	InputSize      int64     `json:"input_size"`
	OutputFilename string    `json:"output_filename,omitempty"`
	ProcessingTime *float64  `json:"processing_time,omitempty"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	DownloadURL    string    `json:"download_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewJobResponse builds the API representation of a conversion job.
func NewJobResponse(job *ConversionJob) JobResponse {
	resp := JobResponse{
		JobID:         job.ID.String(),
		TemplateType:  job.TemplateType,
		TemplateLabel: TemplateLabels[job.TemplateType],
		Status:        job.Status,
		InputFilename: job.InputName,
		InputSize:     job.InputSize,
		ErrorMessage:  job.ErrorMessage,
		CreatedAt:     job.CreatedAt,
		UpdatedAt:     job.UpdatedAt,
	}
	if job.ProcessingTime.Valid {
		t := job.ProcessingTime.Float64
		resp.ProcessingTime = &t
	}
	if job.Status == StatusCompleted && job.OutputPath.Valid {
		resp.OutputFilename = job.OutputFilename()
		resp.DownloadURL = DownloadURL(job.ID.String())
	}
	return resp
}

// DownloadURL returns the API path serving the converted file for jobID.
func DownloadURL(jobID string) string {
	return "/api/v1/jobs/" + jobID + "/download"
}

type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

type StatusResponse struct {
	JobID          string   `json:"job_id"`
	Status         string   `json:"status"`
	ErrorMessage   string   `json:"error_message,omitempty"`
	ProcessingTime *float64 `json:"processing_time,omitempty"`
	DownloadURL    string   `json:"download_url,omitempty"`
}

type TemplateInfo struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type TemplatesResponse struct {
	Templates []TemplateInfo `json:"templates"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
