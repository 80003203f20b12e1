package models

// Photo is fault evidence attached to a submission item. A photo is required
// exactly when the item's status is Operational-with-fault.
type Photo struct {
	SubmissionID string `json:"submission_id"`
	ItemID       string `json:"item_id"`
	Filename     string `json:"filename"`
	PhotoB64     string `json:"photo_b64,omitempty"`
}

// Row serializes the photo in photos-sheet column order.
func (p Photo) Row() []string {
	return []string{p.SubmissionID, p.ItemID, p.Filename, p.PhotoB64}
}

// PhotoFromRow decodes a photos-sheet row.
func PhotoFromRow(row []string) Photo {
	return Photo{
		SubmissionID: cell(row, 0),
		ItemID:       cell(row, 1),
		Filename:     cell(row, 2),
		PhotoB64:     cell(row, 3),
	}
}
