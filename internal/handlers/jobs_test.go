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

func jobsRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewJobsHandler(store)
	router.GET("/api/v1/templates", handler.ListTemplates)
	router.GET("/api/v1/jobs/:job_id", handler.GetJob)
	return router
}

func TestListTemplates(t *testing.T) {
	router := jobsRouter(newFakeStore())

	req, _ := http.NewRequest("GET", "/api/v1/templates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.TemplatesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Templates, 4)
	assert.Equal(t, "passage", resp.Templates[0].Key)
	assert.Equal(t, "CLAT", resp.Templates[0].Label)
	assert.NotEmpty(t, resp.Templates[0].Description)
}

func TestGetJob(t *testing.T) {
	job := &models.ConversionJob{
		ID:           uuid.New(),
		TemplateType: models.TemplateMCQ1,
		Status:       models.StatusPending,
		InputName:    "exam.docx",
		InputPath:    "inputs/exam_ab12cd34.docx",
	}
	router := jobsRouter(newFakeStore(job))

	req, _ := http.NewRequest("GET", "/api/v1/jobs/"+job.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.JobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, job.ID.String(), resp.JobID)
	assert.Equal(t, models.StatusPending, resp.Status)
}

func TestGetJob_NotFound(t *testing.T) {
	router := jobsRouter(newFakeStore())

	req, _ := http.NewRequest("GET", "/api/v1/jobs/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetJob_InvalidID(t *testing.T) {
	router := jobsRouter(newFakeStore())

	req, _ := http.NewRequest("GET", "/api/v1/jobs/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
