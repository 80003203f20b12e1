package models

// Workflow states of a submission. The only transition is
// PENDING -> APPROVED, taken exactly once.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
)

// Condition values used both for the overall equipment state and for
// individual checklist items.
const (
	ConditionOperational = "Operational"
	ConditionWithFault   = "Operational-with-fault"
	ConditionInoperative = "Inoperative"
)

// ValidCondition reports whether s is a known equipment condition.
func ValidCondition(s string) bool {
	switch s {
	case ConditionOperational, ConditionWithFault, ConditionInoperative:
		return true
	}
	return false
}

// Submission is one checklist filled by an operator. Every field except
// Status and UpdatedAt is immutable after creation.
type Submission struct {
	SubmissionID         string `json:"submission_id"`
	Date                 string `json:"date"`
	CreatedAt            string `json:"created_at"`
	EquipmentName        string `json:"equipment_name"`
	OperatorUsername     string `json:"operator_username"`
	OperatorFullName     string `json:"operator_full_name"`
	OverallStatus        string `json:"overall_status"`
	Note                 string `json:"note"`
	OperatorSignatureB64 string `json:"operator_signature_b64,omitempty"`
	Status               string `json:"status"`
	UpdatedAt            string `json:"updated_at"`
}

// Row serializes the submission in submissions-sheet column order.
func (s Submission) Row() []string {
	return []string{
		s.SubmissionID,
		s.Date,
		s.CreatedAt,
		s.EquipmentName,
		s.OperatorUsername,
		s.OperatorFullName,
		s.OverallStatus,
		s.Note,
		s.OperatorSignatureB64,
		s.Status,
		s.UpdatedAt,
	}
}

// SubmissionFromRow decodes a submissions-sheet row.
func SubmissionFromRow(row []string) Submission {
	return Submission{
		SubmissionID:         cell(row, 0),
		Date:                 cell(row, 1),
		CreatedAt:            cell(row, 2),
		EquipmentName:        cell(row, 3),
		OperatorUsername:     cell(row, 4),
		OperatorFullName:     cell(row, 5),
		OverallStatus:        cell(row, 6),
		Note:                 cell(row, 7),
		OperatorSignatureB64: cell(row, 8),
		Status:               cell(row, 9),
		UpdatedAt:            cell(row, 10),
	}
}

// SubmissionItem is the per-item result of a submission. ItemText is a
// snapshot of the checklist text at submission time and never tracks later
// config changes.
type SubmissionItem struct {
	SubmissionID string `json:"submission_id"`
	ItemID       string `json:"item_id"`
	ItemText     string `json:"item_text"`
	Status       string `json:"status"`
	Comment      string `json:"comment"`
}

// Row serializes the item in submission_items-sheet column order.
func (i SubmissionItem) Row() []string {
	return []string{i.SubmissionID, i.ItemID, i.ItemText, i.Status, i.Comment}
}

// SubmissionItemFromRow decodes a submission_items-sheet row.
func SubmissionItemFromRow(row []string) SubmissionItem {
	return SubmissionItem{
		SubmissionID: cell(row, 0),
		ItemID:       cell(row, 1),
		ItemText:     cell(row, 2),
		Status:       cell(row, 3),
		Comment:      cell(row, 4),
	}
}
