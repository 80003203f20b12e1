package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ApproveRequest struct {
	Conforme               string `json:"conforme" binding:"required"`
	Observations           string `json:"observations"`
	SupervisorSignatureB64 string `json:"supervisor_signature_b64" binding:"required"`
}

// ApproveSubmission performs the single PENDING -> APPROVED transition,
// rendering and freezing the report as a side effect.
func (sc *SubmissionController) ApproveSubmission(c *gin.Context) {
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	err := sc.Submissions.Approve(id, currentUser(c), req.Conforme, req.Observations, req.SupervisorSignatureB64)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submission_id": id,
		"message":       "Submission approved and report generated",
	})
}
