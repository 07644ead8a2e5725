package handlers_test

import (
	"context"
	"database/sql"
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

type fakeStatusCache struct {
	entries map[uuid.UUID]map[string]string
}

func (c *fakeStatusCache) Get(ctx context.Context, jobID uuid.UUID) (map[string]string, error) {
	return c.entries[jobID], nil
}

func statusRouter(store *fakeStore, cache handlers.StatusCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewStatusHandler(store, cache)
	router.GET("/api/v1/jobs/:job_id/status", handler.GetStatus)
	return router
}

func getStatus(t *testing.T, router *gin.Engine, jobID string) (*httptest.ResponseRecorder, models.StatusResponse) {
	t.Helper()

	req, _ := http.NewRequest("GET", "/api/v1/jobs/"+jobID+"/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp models.StatusResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestGetStatus_Completed(t *testing.T) {
	job := &models.ConversionJob{
		ID:             uuid.New(),
		TemplateType:   models.TemplateMCQ1,
		Status:         models.StatusCompleted,
		InputPath:      "inputs/exam_ab12cd34.docx",
		OutputPath:     sql.NullString{String: "outputs/mcq1_x.pptx", Valid: true},
		ProcessingTime: sql.NullFloat64{Float64: 1.5, Valid: true},
	}
	router := statusRouter(newFakeStore(job), nil)

	w, resp := getStatus(t, router, job.ID.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusCompleted, resp.Status)
	assert.Equal(t, models.DownloadURL(job.ID.String()), resp.DownloadURL)
	require.NotNil(t, resp.ProcessingTime)
	assert.Equal(t, 1.5, *resp.ProcessingTime)
}

func TestGetStatus_Failed(t *testing.T) {
	job := &models.ConversionJob{
		ID:           uuid.New(),
		TemplateType: models.TemplateMCQ2,
		Status:       models.StatusFailed,
		ErrorMessage: "conversion failed: converter returned status 500",
	}
	router := statusRouter(newFakeStore(job), nil)

	w, resp := getStatus(t, router, job.ID.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusFailed, resp.Status)
	assert.Contains(t, resp.ErrorMessage, "conversion failed")
	assert.Empty(t, resp.DownloadURL)
}

func TestGetStatus_Pending(t *testing.T) {
	job := &models.ConversionJob{
		ID:           uuid.New(),
		TemplateType: models.TemplatePassage,
		Status:       models.StatusPending,
	}
	router := statusRouter(newFakeStore(job), nil)

	w, resp := getStatus(t, router, job.ID.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusPending, resp.Status)
	assert.Empty(t, resp.DownloadURL)
	assert.Nil(t, resp.ProcessingTime)
}

func TestGetStatus_NotFound(t *testing.T) {
	router := statusRouter(newFakeStore(), nil)

	w, _ := getStatus(t, router, uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStatus_CacheHit(t *testing.T) {
	jobID := uuid.New()
	cache := &fakeStatusCache{entries: map[uuid.UUID]map[string]string{
		jobID: {"status": models.StatusCompleted, "processing_time": "2.5"},
	}}
	// the store has no such job, so a 200 proves the cache answered
	router := statusRouter(newFakeStore(), cache)

	w, resp := getStatus(t, router, jobID.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusCompleted, resp.Status)
	assert.Equal(t, models.DownloadURL(jobID.String()), resp.DownloadURL)
	require.NotNil(t, resp.ProcessingTime)
	assert.Equal(t, 2.5, *resp.ProcessingTime)
}

func TestGetStatus_CacheMissFallsBackToStore(t *testing.T) {
	job := &models.ConversionJob{
		ID:           uuid.New(),
		TemplateType: models.TemplateMCQ3,
		Status:       models.StatusProcessing,
	}
	cache := &fakeStatusCache{entries: map[uuid.UUID]map[string]string{}}
	router := statusRouter(newFakeStore(job), cache)

	w, resp := getStatus(t, router, job.ID.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusProcessing, resp.Status)
}
