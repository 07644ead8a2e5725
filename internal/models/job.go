package models

import (
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Job statuses. A job is created pending, mutated exactly once by the
// synchronous conversion call, and then only read until cleanup deletes it.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Template types select which external converter processes the upload.
const (
	TemplatePassage = "passage"
	TemplateMCQ1    = "mcq1"
	TemplateMCQ2    = "mcq2"
	TemplateMCQ3    = "mcq3"
)

// TemplateLabels maps template types to their display names.
var TemplateLabels = map[string]string{
	TemplatePassage: "CLAT",
	TemplateMCQ1:    "Blank - QWH",
	TemplateMCQ2:    "Blank - LWH",
	TemplateMCQ3:    "YouTube",
}

// TemplateDescriptions explains what kind of document each template expects.
var TemplateDescriptions = map[string]string{
	TemplatePassage: "For documents containing passages and reading comprehension questions",
	TemplateMCQ1:    "For standard MCQ format with numbered questions and options",
	TemplateMCQ2:    "For MCQs with arrangements, directions, and circular diagrams",
	TemplateMCQ3:    "For simple MCQ format with basic question-answer structure",
}

// TemplateTypes lists the template keys in display order.
var TemplateTypes = []string{TemplatePassage, TemplateMCQ1, TemplateMCQ2, TemplateMCQ3}

// ValidTemplate reports whether t is a known template type.
func ValidTemplate(t string) bool {
	_, ok := TemplateLabels[t]
	return ok
}

// ConversionJob tracks one upload-to-download conversion attempt.
type ConversionJob struct {
	ID             uuid.UUID
	TemplateType   string
	Status         string
	InputName      string
	InputPath      string
	InputSize      int64
	OutputPath     sql.NullString
	ProcessingTime sql.NullFloat64
	ErrorMessage   string
	UserIP         sql.NullString
	UserAgent      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OutputFilename returns the user-facing download name, derived from the
// stored input file name with a "_converted.pptx" suffix.
func (j *ConversionJob) OutputFilename() string {
	if !j.OutputPath.Valid {
		return ""
	}
	base := filepath.Base(j.InputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_converted.pptx"
}

// JobFilter narrows admin job listings.
type JobFilter struct {
	Status       string
	TemplateType string
	Limit        int
}
