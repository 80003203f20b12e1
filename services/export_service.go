package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"equipment-checklist-api/models"
	"equipment-checklist-api/store"
)

// ExportService builds the weekly three-sheet workbook (submissions, items,
// approvals) for a date window.
type ExportService struct {
	Store *store.Store
}

// NewExportService wires the export over the record store.
func NewExportService(s *store.Store) *ExportService {
	return &ExportService{Store: s}
}

// Export sheet names, fixed for downstream tooling.
const (
	SheetSubmissions = "submissions"
	SheetItems       = "items"
	SheetApprovals   = "approvals"
)

// WeekRange returns the Monday and Saturday of the week containing ref.
// Monday = ref - weekday offset, Saturday = Monday + 5 days. A Sunday
// reference resolves to the preceding Monday, so its window has already
// closed.
func WeekRange(ref time.Time) (monday, saturday time.Time) {
	ref = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	offset := (int(ref.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	monday = ref.AddDate(0, 0, -offset)
	saturday = monday.AddDate(0, 0, 5)
	return monday, saturday
}

// ExportRange serializes every submission with start <= date <= end, plus
// the items and approvals belonging to those submissions, into an XLSX
// workbook. An empty range still yields a well-formed workbook with header
// rows so downstream tooling never sees a malformed file.
func (s *ExportService) ExportRange(start, end time.Time) ([]byte, error) {
	if end.Before(start) {
		return nil, &ValidationError{Msg: "end date must not be before start date"}
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	subRows, err := s.Store.AllRows(store.TableSubmissions)
	if err != nil {
		return nil, err
	}

	inRange := make(map[string]bool)
	var filtered [][]string
	for _, r := range subRows {
		sub := models.SubmissionFromRow(r)
		d, err := time.ParseInLocation(dateLayout, sub.Date, time.UTC)
		if err != nil {
			// Unparseable dates fall outside every window.
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		inRange[sub.SubmissionID] = true
		filtered = append(filtered, r)
	}

	itemRows, err := s.childRowsIn(store.TableSubmissionItems, inRange)
	if err != nil {
		return nil, err
	}
	apprRows, err := s.childRowsIn(store.TableApprovals, inRange)
	if err != nil {
		return nil, err
	}

	wb := excelize.NewFile()
	defer wb.Close()

	wb.SetSheetName("Sheet1", SheetSubmissions)
	if err := writeSheet(wb, SheetSubmissions, store.Headers[store.TableSubmissions], filtered); err != nil {
		return nil, err
	}
	if _, err := wb.NewSheet(SheetItems); err != nil {
		return nil, err
	}
	if err := writeSheet(wb, SheetItems, store.Headers[store.TableSubmissionItems], itemRows); err != nil {
		return nil, err
	}
	if _, err := wb.NewSheet(SheetApprovals); err != nil {
		return nil, err
	}
	if err := writeSheet(wb, SheetApprovals, store.Headers[store.TableApprovals], apprRows); err != nil {
		return nil, err
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write export workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportWeek exports the Monday-Saturday window containing ref.
func (s *ExportService) ExportWeek(ref time.Time) ([]byte, time.Time, time.Time, error) {
	monday, saturday := WeekRange(ref)
	data, err := s.ExportRange(monday, saturday)
	return data, monday, saturday, err
}

func (s *ExportService) childRowsIn(table string, ids map[string]bool) ([][]string, error) {
	rows, err := s.Store.AllRows(table)
	if err != nil {
		return nil, err
	}
	var out [][]string
	for _, r := range rows {
		if len(r) > 0 && ids[r[0]] {
			out = append(out, r)
		}
	}
	return out, nil
}

// writeSheet writes a header plus data rows. Cells past the XLSX per-cell
// limit (signature and report blobs) are carried in continuation cells
// using the same convention as the backing store, so nothing is silently
// truncated in transit.
func writeSheet(wb *excelize.File, sheet string, header []string, rows [][]string) error {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, header)
	for _, row := range rows {
		all = append(all, store.EncodeRow(row))
	}
	for i, row := range all {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
