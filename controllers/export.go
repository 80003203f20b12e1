package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"equipment-checklist-api/services"
)

// ExportController serves the weekly XLSX export.
type ExportController struct {
	Export *services.ExportService
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportWeekly streams the three-sheet workbook for ?start=&end=
// (YYYY-MM-DD, inclusive). Without parameters it covers the Monday-Saturday
// window of the current week.
func (xc *ExportController) ExportWeekly(c *gin.Context) {
	start, end := services.WeekRange(time.Now())

	if q := c.Query("start"); q != "" {
		d, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
			return
		}
		start = d
	}
	if q := c.Query("end"); q != "" {
		d, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
			return
		}
		end = d
	}

	data, err := xc.Export.ExportRange(start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("report_%s_to_%s.xlsx", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, data)
}
