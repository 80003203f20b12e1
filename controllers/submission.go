package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"equipment-checklist-api/models"
	"equipment-checklist-api/services"
)

// SubmissionController handles the checklist workflow endpoints.
type SubmissionController struct {
	Submissions *services.SubmissionService
}

// CreateSubmission accepts a filled checklist from the operator. Photos and
// the signature arrive base64-encoded in the JSON body.
func (sc *SubmissionController) CreateSubmission(c *gin.Context) {
	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sid, err := sc.Submissions.Submit(currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"submission_id": sid,
		"status":        models.StatusPending,
		"message":       "Submission created and pending review",
	})
}

// GetSubmissions lists submissions. Operators only see their own; the
// supervisor sees everything, optionally filtered by ?status= and
// ?equipment=.
func (sc *SubmissionController) GetSubmissions(c *gin.Context) {
	user := currentUser(c)

	filter := services.ListFilter{
		Status:        strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		EquipmentName: c.Query("equipment"),
	}
	if user.Role != models.RoleSupervisor {
		filter.OperatorUsername = user.Username
	}

	subs, err := sc.Submissions.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	// Signature blobs are omitted from listings to keep responses small.
	for i := range subs {
		subs[i].OperatorSignatureB64 = ""
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs, "total": len(subs)})
}

// GetSubmission returns one submission with its items, photos and approval.
func (sc *SubmissionController) GetSubmission(c *gin.Context) {
	sub, items, photos, appr, err := sc.Submissions.Detail(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	user := currentUser(c)
	if user.Role != models.RoleSupervisor && !strings.EqualFold(sub.OperatorUsername, user.Username) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submission": sub,
		"items":      items,
		"photos":     photos,
		"approval":   appr,
	})
}

// DownloadReport streams the frozen PDF of an approved submission.
func (sc *SubmissionController) DownloadReport(c *gin.Context) {
	id := c.Param("id")
	report, err := sc.Submissions.Report(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=checklist_%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", report)
}
