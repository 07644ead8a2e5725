package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/models"
)

// HealthHandler reports service liveness.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
