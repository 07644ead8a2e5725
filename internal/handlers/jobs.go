package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/models"
)

type JobsHandler struct {
	store JobStore
}

func NewJobsHandler(store JobStore) *JobsHandler {
	return &JobsHandler{store: store}
}

// GetJob returns the full job record, whatever its status.
func (h *JobsHandler) GetJob(c *gin.Context) {
	job, ok := fetchJob(c, h.store)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.NewJobResponse(job))
}

// ListTemplates returns the available conversion templates.
func (h *JobsHandler) ListTemplates(c *gin.Context) {
	templates := make([]models.TemplateInfo, 0, len(models.TemplateTypes))
	for _, key := range models.TemplateTypes {
		templates = append(templates, models.TemplateInfo{
			Key:         key,
			Label:       models.TemplateLabels[key],
			Description: models.TemplateDescriptions[key],
		})
	}
	c.JSON(http.StatusOK, models.TemplatesResponse{Templates: templates})
}

// fetchJob parses the job_id param and loads the job, writing the error
// response itself when either step fails.
func fetchJob(c *gin.Context, store JobStore) (*models.ConversionJob, bool) {
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid job id"})
		return nil, false
	}

	job, err := store.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "job not found"})
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to get job",
				Message: err.Error(),
			})
		}
		return nil, false
	}
	return job, true
}
