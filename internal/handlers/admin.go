package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/models"
)

const (
	defaultAdminListLimit = 50
	maxAdminListLimit     = 200
)

// AdminHandler serves the read-only operator views over conversion jobs.
type AdminHandler struct {
	store JobStore
}

func NewAdminHandler(store JobStore) *AdminHandler {
	return &AdminHandler{store: store}
}

// ListJobs returns recent jobs, newest first, optionally filtered by
// status and template.
func (h *AdminHandler) ListJobs(c *gin.Context) {
	filter := models.JobFilter{
		Status:       c.Query("status"),
		TemplateType: c.Query("template"),
		Limit:        defaultAdminListLimit,
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid limit"})
			return
		}
		if limit > maxAdminListLimit {
			limit = maxAdminListLimit
		}
		filter.Limit = limit
	}

	jobs, err := h.store.ListJobs(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list jobs",
			Message: err.Error(),
		})
		return
	}

	resp := models.JobListResponse{Jobs: make([]models.JobResponse, 0, len(jobs))}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, models.NewJobResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetJob returns one job for inspection.
func (h *AdminHandler) GetJob(c *gin.Context) {
	job, ok := fetchJob(c, h.store)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.NewJobResponse(job))
}
