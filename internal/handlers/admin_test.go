package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/handlers"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/models"
)

func adminRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewAdminHandler(store)
	router.GET("/api/v1/admin/jobs", handler.ListJobs)
	router.GET("/api/v1/admin/jobs/:job_id", handler.GetJob)
	return router
}

func TestAdminListJobs_Defaults(t *testing.T) {
	store := newFakeStore()
	store.listResult = []models.ConversionJob{
		{ID: uuid.New(), TemplateType: models.TemplatePassage, Status: models.StatusCompleted},
		{ID: uuid.New(), TemplateType: models.TemplateMCQ1, Status: models.StatusFailed},
	}
	router := adminRouter(store)

	req, _ := http.NewRequest("GET", "/api/v1/admin/jobs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, store.lastFilter.Limit)
	assert.Empty(t, store.lastFilter.Status)

	var resp models.JobListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Jobs, 2)
}

func TestAdminListJobs_Filters(t *testing.T) {
	store := newFakeStore()
	router := adminRouter(store)

	req, _ := http.NewRequest("GET", "/api/v1/admin/jobs?status=failed&template=mcq2&limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusFailed, store.lastFilter.Status)
	assert.Equal(t, models.TemplateMCQ2, store.lastFilter.TemplateType)
	assert.Equal(t, 10, store.lastFilter.Limit)
}

func TestAdminListJobs_LimitClamped(t *testing.T) {
	store := newFakeStore()
	router := adminRouter(store)

	req, _ := http.NewRequest("GET", "/api/v1/admin/jobs?limit=5000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 200, store.lastFilter.Limit)
}

func TestAdminListJobs_InvalidLimit(t *testing.T) {
	router := adminRouter(newFakeStore())

	req, _ := http.NewRequest("GET", "/api/v1/admin/jobs?limit=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid limit")
}

func TestAdminGetJob(t *testing.T) {
	job := &models.ConversionJob{
		ID:           uuid.New(),
		TemplateType: models.TemplateMCQ3,
		Status:       models.StatusProcessing,
	}
	router := adminRouter(newFakeStore(job))

	req, _ := http.NewRequest("GET", "/api/v1/admin/jobs/"+job.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.JobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, job.ID.String(), resp.JobID)
	assert.Equal(t, models.StatusProcessing, resp.Status)
}
