package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"equipment-checklist-api/services"
)

// DashboardController serves the supervisor's summary counters.
type DashboardController struct {
	Submissions *services.SubmissionService
}

// GetDashboardStats returns submission counters, optionally filtered by
// ?equipment= and ?status=.
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	filter := services.ListFilter{
		Status:        strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		EquipmentName: c.Query("equipment"),
	}

	stats, err := dc.Submissions.Stats(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
