package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/models"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/storage"
)

const maxUserAgentLen = 255

type ConvertHandler struct {
	store          JobStore
	converter      Converter
	backend        storage.Backend
	maxUploadBytes int64
}

func NewConvertHandler(store JobStore, converter Converter, backend storage.Backend, maxUploadBytes int64) *ConvertHandler {
	return &ConvertHandler{
		store:          store,
		converter:      converter,
		backend:        backend,
		maxUploadBytes: maxUploadBytes,
	}
}

// Convert accepts a multipart upload (file field "document", form value
// "template"), persists a pending job, runs the conversion synchronously,
// and returns the finished job with its download URL.
func (h *ConvertHandler) Convert(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	file, err := h.formFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if !strings.EqualFold(filepath.Ext(file.Filename), ".docx") {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "only .docx files are allowed"})
		return
	}

	if file.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
			Error: fmt.Sprintf("file size must be under %dMB", h.maxUploadBytes/(1024*1024)),
		})
		return
	}

	templateType := c.PostForm("template")
	if !models.ValidTemplate(templateType) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "unknown template type",
			Message: fmt.Sprintf("template must be one of %v", models.TemplateTypes),
		})
		return
	}

	userAgent := c.Request.UserAgent()
	if len(userAgent) > maxUserAgentLen {
		userAgent = userAgent[:maxUserAgentLen]
	}

	job := &models.ConversionJob{
		ID:           uuid.New(),
		TemplateType: templateType,
		Status:       models.StatusPending,
		InputName:    file.Filename,
		InputPath:    storage.InputKey(file.Filename),
		InputSize:    file.Size,
		UserAgent:    userAgent,
	}
	if ip := c.ClientIP(); ip != "" {
		job.UserIP.String = ip
		job.UserIP.Valid = true
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to open uploaded file",
			Message: err.Error(),
		})
		return
	}
	defer src.Close()

	if _, err := h.backend.Save(c.Request.Context(), job.InputPath, src); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to store uploaded file",
			Message: err.Error(),
		})
		return
	}

	if err := h.store.CreateJob(c.Request.Context(), job); err != nil {
		h.backend.Remove(c.Request.Context(), job.InputPath)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create job",
			Message: err.Error(),
		})
		return
	}

	if err := h.converter.Convert(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "conversion failed",
			Message: job.ErrorMessage,
		})
		return
	}

	c.JSON(http.StatusCreated, models.NewJobResponse(job))
}

// formFile fetches the uploaded document, accepting a couple of common
// field names.
func (h *ConvertHandler) formFile(c *gin.Context) (*multipart.FileHeader, error) {
	for _, fieldName := range []string{"document", "file"} {
		if file, err := c.FormFile(fieldName); err == nil {
			return file, nil
		}
	}
	return nil, fmt.Errorf("no file uploaded: provide a .docx file in the \"document\" field")
}
