package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-checklist-api/models"
	"equipment-checklist-api/services"
)

// Set bundles every controller for route registration.
type Set struct {
	Auth        *AuthController
	Users       *UserController
	Submissions *SubmissionController
	Equipment   *EquipmentController
	Export      *ExportController
	Dashboard   *DashboardController
}

// NewSet wires the controllers over their services.
func NewSet(identity *services.IdentityService, submissions *services.SubmissionService, export *services.ExportService, checklist *models.ChecklistConfig) *Set {
	return &Set{
		Auth:        &AuthController{Identity: identity},
		Users:       &UserController{Identity: identity},
		Submissions: &SubmissionController{Submissions: submissions},
		Equipment:   &EquipmentController{Checklist: checklist},
		Export:      &ExportController{Export: export},
		Dashboard:   &DashboardController{Submissions: submissions},
	}
}

// currentUser returns the authenticated user set by the auth middleware.
func currentUser(c *gin.Context) models.User {
	v, _ := c.Get("user")
	user, _ := v.(models.User)
	return user
}

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		validation *services.ValidationError
		state      *services.StateError
		notFound   *services.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &state):
		c.JSON(http.StatusConflict, gin.H{"error": state.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	default:
		// IntegrityError and anything unexpected end the operation here.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
