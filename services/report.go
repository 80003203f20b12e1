package services

import "equipment-checklist-api/models"

// ReportRenderer turns an approved submission into an opaque report blob.
// The workflow treats the renderer as an external collaborator: it only
// depends on this interface, and stores whatever bytes come back verbatim.
//
// Implementations must degrade gracefully when an embedded image (signature,
// photo) cannot be decoded: omit the image and keep the rest of the report
// rather than failing the render.
type ReportRenderer interface {
	Render(sub models.Submission, items []models.SubmissionItem, photos []models.Photo, appr models.Approval) ([]byte, error)
}
