package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/models"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/storage"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

type DownloadHandler struct {
	store   JobStore
	backend storage.Backend
}

func NewDownloadHandler(store JobStore, backend storage.Backend) *DownloadHandler {
	return &DownloadHandler{store: store, backend: backend}
}

// Download streams the generated presentation as an attachment. Only
// completed jobs with an output file can be downloaded.
func (h *DownloadHandler) Download(c *gin.Context) {
	job, ok := fetchJob(c, h.store)
	if !ok {
		return
	}

	if job.Status != models.StatusCompleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "conversion not completed"})
		return
	}

	if !job.OutputPath.Valid || job.OutputPath.String == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "output file not found"})
		return
	}

	reader, size, err := h.backend.Open(c.Request.Context(), job.OutputPath.String)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "file not found on server",
			Message: err.Error(),
		})
		return
	}
	defer reader.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, quoteFilename(job.OutputFilename())),
	}
	c.DataFromReader(http.StatusOK, size, pptxContentType, reader, extraHeaders)
}

// quoteFilename escapes characters that would break out of the quoted
// Content-Disposition filename.
func quoteFilename(name string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(name)
}
