package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-checklist-api/models"
)

// EquipmentController serves the static equipment definitions.
type EquipmentController struct {
	Checklist *models.ChecklistConfig
}

// GetEquipment lists the configured equipment and their checklist items.
// An empty configuration yields an empty list, never invented entries.
func (ec *EquipmentController) GetEquipment(c *gin.Context) {
	equipment := ec.Checklist.Equipment
	if equipment == nil {
		equipment = []models.Equipment{}
	}
	c.JSON(http.StatusOK, gin.H{"equipment": equipment})
}
