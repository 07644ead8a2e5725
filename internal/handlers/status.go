package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/models"
)

type StatusHandler struct {
	store JobStore
	cache StatusCache
}

func NewStatusHandler(store JobStore, cache StatusCache) *StatusHandler {
	return &StatusHandler{store: store, cache: cache}
}

// GetStatus reports a job's status for polling. The status cache is
// consulted first when available so hot polling stays off Postgres; the
// database remains the authority when the cache entry is missing.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid job id"})
		return
	}

	if resp, ok := h.statusFromCache(c, jobID); ok {
		c.JSON(http.StatusOK, resp)
		return
	}

	job, ok := fetchJob(c, h.store)
	if !ok {
		return
	}

	resp := models.StatusResponse{
		JobID:        job.ID.String(),
		Status:       job.Status,
		ErrorMessage: job.ErrorMessage,
	}
	if job.ProcessingTime.Valid {
		t := job.ProcessingTime.Float64
		resp.ProcessingTime = &t
	}
	if job.Status == models.StatusCompleted {
		resp.DownloadURL = models.DownloadURL(job.ID.String())
	}

	c.JSON(http.StatusOK, resp)
}

func (h *StatusHandler) statusFromCache(c *gin.Context, jobID uuid.UUID) (models.StatusResponse, bool) {
	if h.cache == nil {
		return models.StatusResponse{}, false
	}

	fields, err := h.cache.Get(c.Request.Context(), jobID)
	if err != nil || len(fields) == 0 {
		return models.StatusResponse{}, false
	}

	resp := models.StatusResponse{
		JobID:        jobID.String(),
		Status:       fields["status"],
		ErrorMessage: fields["error"],
	}
	if v, err := strconv.ParseFloat(fields["processing_time"], 64); err == nil {
		resp.ProcessingTime = &v
	}
	if resp.Status == models.StatusCompleted {
		resp.DownloadURL = models.DownloadURL(jobID.String())
	}
	return resp, true
}
