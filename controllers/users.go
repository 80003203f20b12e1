package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-checklist-api/services"
)

// UserController exposes the supervisor-only user administration surface.
type UserController struct {
	Identity *services.IdentityService
}

type SaveUserRequest struct {
	Username string `json:"username" binding:"required"`
	Role     string `json:"role" binding:"required"`
	FullName string `json:"full_name"`
	IsActive *bool  `json:"is_active"`
	// Password is mandatory when creating a user and optional on update;
	// empty keeps the stored hash.
	Password string `json:"password"`
}

// ListUsers returns every user record.
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.Identity.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// SaveUser creates a new user or overwrites fields of an existing one.
func (uc *UserController) SaveUser(c *gin.Context) {
	var req SaveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user, err := uc.Identity.CreateOrUpdate(req.Username, req.Role, req.FullName, isActive, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "message": "User saved"})
}

// DeleteUser removes a user record. The admin account is protected.
func (uc *UserController) DeleteUser(c *gin.Context) {
	if err := uc.Identity.Delete(c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
