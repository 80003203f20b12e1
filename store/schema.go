package store

// Logical table (worksheet) names.
const (
	TableUsers           = "users"
	TableSubmissions     = "submissions"
	TableSubmissionItems = "submission_items"
	TablePhotos          = "photos"
	TableApprovals       = "approvals"
)

// Tables lists every worksheet the store maintains, in creation order.
var Tables = []string{
	TableUsers,
	TableSubmissions,
	TableSubmissionItems,
	TablePhotos,
	TableApprovals,
}

// Headers maps each table to its header row. Column order is significant:
// rows are flat []string slices addressed by these positions, and exports
// reuse the same layout.
var Headers = map[string][]string{
	TableUsers: {
		"username", "password_hash", "role", "full_name", "is_active", "created_at",
	},
	TableSubmissions: {
		"submission_id", "date", "created_at", "equipment_name",
		"operator_username", "operator_full_name", "overall_status", "note",
		"operator_signature_b64", "status", "updated_at",
	},
	TableSubmissionItems: {
		"submission_id", "item_id", "item_text", "status", "comment",
	},
	TablePhotos: {
		"submission_id", "item_id", "filename", "photo_b64",
	},
	TableApprovals: {
		"submission_id", "approved_at", "supervisor_username",
		"supervisor_full_name", "conforme", "observations",
		"supervisor_signature_b64", "rendered_report_b64",
	},
}

// columnIndex returns the position of a column in a table header, or -1.
func columnIndex(table, column string) int {
	for i, name := range Headers[table] {
		if name == column {
			return i
		}
	}
	return -1
}
