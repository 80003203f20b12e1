package models

// Supervisor conformity verdicts. A non-conforming review is still recorded
// on an APPROVED submission; conformity is an attribute of the approval, not
// a workflow state.
const (
	ConformeYes = "Conforme"
	ConformeNo  = "No conforme"
)

// ValidConforme reports whether s is a known conformity verdict.
func ValidConforme(s string) bool {
	return s == ConformeYes || s == ConformeNo
}

// Approval records the supervisor sign-off for one submission (1:1 by
// submission_id) together with the frozen PDF report.
type Approval struct {
	SubmissionID           string `json:"submission_id"`
	ApprovedAt             string `json:"approved_at"`
	SupervisorUsername     string `json:"supervisor_username"`
	SupervisorFullName     string `json:"supervisor_full_name"`
	Conforme               string `json:"conforme"`
	Observations           string `json:"observations"`
	SupervisorSignatureB64 string `json:"supervisor_signature_b64,omitempty"`
	RenderedReportB64      string `json:"-"`
}

// Row serializes the approval in approvals-sheet column order.
func (a Approval) Row() []string {
	return []string{
		a.SubmissionID,
		a.ApprovedAt,
		a.SupervisorUsername,
		a.SupervisorFullName,
		a.Conforme,
		a.Observations,
		a.SupervisorSignatureB64,
		a.RenderedReportB64,
	}
}

// ApprovalFromRow decodes an approvals-sheet row.
func ApprovalFromRow(row []string) Approval {
	return Approval{
		SubmissionID:           cell(row, 0),
		ApprovedAt:             cell(row, 1),
		SupervisorUsername:     cell(row, 2),
		SupervisorFullName:     cell(row, 3),
		Conforme:               cell(row, 4),
		Observations:           cell(row, 5),
		SupervisorSignatureB64: cell(row, 6),
		RenderedReportB64:      cell(row, 7),
	}
}
