package services

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"equipment-checklist-api/models"
	"equipment-checklist-api/store"
)

func TestWeekRangeAlwaysBracketsReference(t *testing.T) {
	// A known week: Monday 2026-08-24 through Saturday 2026-08-29.
	cases := []struct {
		ref    string
		monday string
	}{
		{"2026-08-24", "2026-08-24"}, // Monday maps to itself
		{"2026-08-26", "2026-08-24"}, // midweek
		{"2026-08-29", "2026-08-24"}, // Saturday
		{"2026-08-30", "2026-08-24"}, // Sunday still belongs to the preceding Monday
		{"2026-08-31", "2026-08-31"}, // next Monday starts a new week
	}
	for _, tc := range cases {
		ref, err := time.Parse("2006-01-02", tc.ref)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.ref, err)
		}
		monday, saturday := WeekRange(ref)
		if got := monday.Format("2006-01-02"); got != tc.monday {
			t.Fatalf("WeekRange(%s): expected Monday %s, got %s", tc.ref, tc.monday, got)
		}
		if saturday.Sub(monday) != 5*24*time.Hour {
			t.Fatalf("WeekRange(%s): Saturday is not Monday+5d", tc.ref)
		}
		if ref.Before(monday) {
			t.Fatalf("WeekRange(%s): reference precedes Monday %s", tc.ref,
				monday.Format("2006-01-02"))
		}
	}
}

func seedSubmissionForExport(t *testing.T, s *store.Store, id, date string) {
	t.Helper()
	sub := models.Submission{
		SubmissionID:     id,
		Date:             date,
		EquipmentName:    "Forklift-1",
		OperatorUsername: "op1",
		Status:           models.StatusApproved,
		OverallStatus:    models.ConditionOperational,
		CreatedAt:        date + "T08:00:00",
		UpdatedAt:        date + "T09:00:00",
	}
	if err := s.Append(store.TableSubmissions, sub.Row()); err != nil {
		t.Fatalf("seed submission %s: %v", id, err)
	}
	item := models.SubmissionItem{SubmissionID: id, ItemID: "I1", ItemText: "Brakes respond", Status: models.ConditionOperational}
	if err := s.Append(store.TableSubmissionItems, item.Row()); err != nil {
		t.Fatalf("seed item for %s: %v", id, err)
	}
	appr := models.Approval{SubmissionID: id, SupervisorUsername: "sup1", Conforme: models.ConformeYes, ApprovedAt: date + "T09:00:00"}
	if err := s.Append(store.TableApprovals, appr.Row()); err != nil {
		t.Fatalf("seed approval for %s: %v", id, err)
	}
}

func sheetColumn(t *testing.T, wb *excelize.File, sheet string, col int) []string {
	t.Helper()
	rows, err := wb.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", sheet, err)
	}
	var out []string
	for _, r := range rows {
		if col < len(r) {
			out = append(out, r[col])
		} else {
			out = append(out, "")
		}
	}
	return out
}

func TestExportWeekFiltersByWindow(t *testing.T) {
	s := newTestStore(t)
	svc := NewExportService(s)

	// Tuesday of the target week is in range, the following Monday is not.
	seedSubmissionForExport(t, s, "SIN", "2026-08-25")
	seedSubmissionForExport(t, s, "SOUT", "2026-08-31")

	ref, _ := time.Parse("2006-01-02", "2026-08-27")
	data, monday, saturday, err := svc.ExportWeek(ref)
	if err != nil {
		t.Fatalf("ExportWeek returned error: %v", err)
	}
	if monday.Format("2006-01-02") != "2026-08-24" || saturday.Format("2006-01-02") != "2026-08-29" {
		t.Fatalf("unexpected window %s..%s", monday.Format("2006-01-02"), saturday.Format("2006-01-02"))
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported workbook does not open: %v", err)
	}
	defer wb.Close()

	for _, sheet := range []string{SheetSubmissions, SheetItems, SheetApprovals} {
		if idx, err := wb.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Fatalf("missing sheet %s (idx %d, err %v)", sheet, idx, err)
		}
	}

	ids := sheetColumn(t, wb, SheetSubmissions, 0)
	if len(ids) != 2 || ids[0] != "submission_id" || ids[1] != "SIN" {
		t.Fatalf("unexpected submissions column: %v", ids)
	}
	for _, id := range ids {
		if id == "SOUT" {
			t.Fatal("out-of-window submission leaked into the export")
		}
	}

	itemIDs := sheetColumn(t, wb, SheetItems, 0)
	if len(itemIDs) != 2 || itemIDs[1] != "SIN" {
		t.Fatalf("unexpected items column: %v", itemIDs)
	}
	apprIDs := sheetColumn(t, wb, SheetApprovals, 0)
	if len(apprIDs) != 2 || apprIDs[1] != "SIN" {
		t.Fatalf("unexpected approvals column: %v", apprIDs)
	}
}

func TestExportRangeBoundariesAreInclusive(t *testing.T) {
	s := newTestStore(t)
	svc := NewExportService(s)

	seedSubmissionForExport(t, s, "SMON", "2026-08-24")
	seedSubmissionForExport(t, s, "SSAT", "2026-08-29")
	seedSubmissionForExport(t, s, "SSUN", "2026-08-30")

	start, _ := time.Parse("2006-01-02", "2026-08-24")
	end, _ := time.Parse("2006-01-02", "2026-08-29")
	data, err := svc.ExportRange(start, end)
	if err != nil {
		t.Fatalf("ExportRange returned error: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported workbook does not open: %v", err)
	}
	defer wb.Close()

	ids := sheetColumn(t, wb, SheetSubmissions, 0)
	if len(ids) != 3 || ids[1] != "SMON" || ids[2] != "SSAT" {
		t.Fatalf("expected both boundary days and nothing else, got %v", ids)
	}
}

func TestExportRangeEmptyStillWellFormed(t *testing.T) {
	s := newTestStore(t)
	svc := NewExportService(s)

	start, _ := time.Parse("2006-01-02", "2026-08-24")
	data, err := svc.ExportRange(start, start.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("ExportRange returned error: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("empty export does not open: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(SheetSubmissions)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "submission_id" {
		t.Fatalf("expected a header-only sheet, got %v", rows)
	}
}

func TestExportRangeRejectsInvertedWindow(t *testing.T) {
	svc := NewExportService(newTestStore(t))

	start, _ := time.Parse("2006-01-02", "2026-08-24")
	_, err := svc.ExportRange(start, start.AddDate(0, 0, -1))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
