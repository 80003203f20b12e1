package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Store is a row-oriented record store backed by an XLSX workbook. Each
// logical table is a worksheet with a header row; there are no transactions,
// no secondary indices and no query surface beyond a linear scan. The handle
// is long-lived and shared across requests within a process; concurrent
// processes writing the same workbook race with last-writer-wins semantics,
// which callers must not rely on the store to resolve.
type Store struct {
	mu   sync.Mutex
	path string
	wb   *excelize.File
}

// Open opens the workbook at path, creating it (and any missing worksheets
// or header rows) if needed. A workbook that exists but cannot be read is
// an error, never a reason to start a fresh file over the stored data.
func Open(path string) (*Store, error) {
	var wb *excelize.File
	created := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		wb = excelize.NewFile()
		created = true
	} else if err != nil {
		return nil, fmt.Errorf("stat workbook %s: %w", path, err)
	} else {
		wb, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", path, err)
		}
	}

	for _, table := range Tables {
		idx, err := wb.GetSheetIndex(table)
		if err != nil {
			return nil, fmt.Errorf("inspect sheet %s: %w", table, err)
		}
		if idx < 0 {
			if _, err := wb.NewSheet(table); err != nil {
				return nil, fmt.Errorf("create sheet %s: %w", table, err)
			}
		}
		rows, err := wb.GetRows(table)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", table, err)
		}
		if len(rows) == 0 {
			if err := writeRow(wb, table, 1, Headers[table]); err != nil {
				return nil, fmt.Errorf("write header for %s: %w", table, err)
			}
		}
	}
	if created {
		// Drop the default sheet excelize starts a fresh workbook with.
		_ = wb.DeleteSheet("Sheet1")
	}

	s := &Store{path: path, wb: wb}
	if err := s.save(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the underlying workbook handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wb.Close()
}

// Append adds one row to the end of a table. Insertion order is preserved;
// no uniqueness is enforced beyond what callers guarantee.
func (s *Store) Append(table string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.appendLocked(table, row); err != nil {
		return err
	}
	return s.save()
}

// AllRows returns every data row of a table (header excluded), each padded
// to the table's column count.
func (s *Store) AllRows(table string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.wb.GetRows(table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}
	out := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		out = append(out, DecodeRow(r, len(Headers[table])))
	}
	return out, nil
}

// FindByKey returns the first row whose key column matches keyVal.
// Comparison is a trimmed, case-insensitive string match over a linear scan.
func (s *Store) FindByKey(table, keyCol, keyVal string) ([]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, rows, err := s.scanLocked(table, keyCol)
	if err != nil {
		return nil, false, err
	}
	for _, r := range rows {
		if keyMatches(r, idx, keyVal) {
			return DecodeRow(r, len(Headers[table])), true, nil
		}
	}
	return nil, false, nil
}

// UpdateFieldsByKey locates the first row matching keyVal and overwrites only
// the named fields, leaving the rest untouched. It returns false when the
// table is empty or no row matches; callers decide whether that is benign.
func (s *Store) UpdateFieldsByKey(table, keyCol, keyVal string, updates map[string]string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, rows, err := s.scanLocked(table, keyCol)
	if err != nil {
		return false, err
	}
	target := -1
	var raw []string
	for i, r := range rows {
		if keyMatches(r, idx, keyVal) {
			target = i + 2 // 1-based, past the header
			raw = r
			break
		}
	}
	if target < 0 {
		return false, nil
	}

	// The whole row is rewritten so continuation cells of unchanged blob
	// columns stay consistent with their markers.
	decoded := DecodeRow(raw, len(Headers[table]))
	for col, val := range updates {
		ci := columnIndex(table, col)
		if ci < 0 {
			continue
		}
		decoded[ci] = val
	}
	encoded := EncodeRow(decoded)
	// Blank out stale continuation cells when the new encoding is shorter.
	for len(encoded) < len(raw) {
		encoded = append(encoded, "")
	}
	if err := writeRow(s.wb, table, target, encoded); err != nil {
		return false, fmt.Errorf("update %s: %w", table, err)
	}
	return true, s.save()
}

// DeleteAllByKey removes every row whose key column matches keyVal and
// returns how many were removed.
func (s *Store) DeleteAllByKey(table, keyCol, keyVal string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.deleteAllLocked(table, keyCol, keyVal)
	if err != nil {
		return 0, err
	}
	return n, s.save()
}

// ReplaceChildren rewrites the set of child rows for one parent key:
// delete-all-then-append. This is the store's upsert primitive for dependent
// tables and must stay a two-step sequence so retries never duplicate rows.
func (s *Store) ReplaceChildren(table, keyCol, keyVal string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.deleteAllLocked(table, keyCol, keyVal); err != nil {
		return err
	}
	for _, row := range rows {
		if err := s.appendLocked(table, row); err != nil {
			return err
		}
	}
	return s.save()
}

func (s *Store) appendLocked(table string, row []string) error {
	rows, err := s.wb.GetRows(table)
	if err != nil {
		return fmt.Errorf("read %s: %w", table, err)
	}
	return writeRow(s.wb, table, len(rows)+1, EncodeRow(row))
}

func (s *Store) deleteAllLocked(table, keyCol, keyVal string) (int, error) {
	idx, rows, err := s.scanLocked(table, keyCol)
	if err != nil {
		return 0, err
	}
	var targets []int
	for i, r := range rows {
		if keyMatches(r, idx, keyVal) {
			targets = append(targets, i+2)
		}
	}
	// Bottom-up so earlier deletions do not shift pending row numbers.
	sort.Sort(sort.Reverse(sort.IntSlice(targets)))
	for _, rowNum := range targets {
		if err := s.wb.RemoveRow(table, rowNum); err != nil {
			return 0, fmt.Errorf("delete row %d from %s: %w", rowNum, table, err)
		}
	}
	return len(targets), nil
}

// scanLocked resolves the key column index and returns the data rows.
func (s *Store) scanLocked(table, keyCol string) (int, [][]string, error) {
	idx := columnIndex(table, keyCol)
	if idx < 0 {
		return 0, nil, fmt.Errorf("table %s has no column %s", table, keyCol)
	}
	rows, err := s.wb.GetRows(table)
	if err != nil {
		return 0, nil, fmt.Errorf("read %s: %w", table, err)
	}
	if len(rows) < 2 {
		return idx, nil, nil
	}
	return idx, rows[1:], nil
}

func (s *Store) save() error {
	if err := s.wb.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRow(wb *excelize.File, table string, rowNum int, row []string) error {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return wb.SetSheetRow(table, cell, &cells)
}

func keyMatches(row []string, idx int, keyVal string) bool {
	if idx >= len(row) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row[idx]), strings.TrimSpace(keyVal))
}
