package store

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestEncodeRowLeavesFittingRowsAlone(t *testing.T) {
	row := []string{"S1", "2026-08-25", strings.Repeat("a", maxCellChars)}
	enc := EncodeRow(row)
	if len(enc) != len(row) {
		t.Fatalf("expected no continuation cells, got %d cells", len(enc))
	}
	dec := DecodeRow(enc, len(row))
	for i := range row {
		if dec[i] != row[i] {
			t.Fatalf("cell %d mutated", i)
		}
	}
}

func TestEncodeRowChunksOversizedCells(t *testing.T) {
	big := strings.Repeat("x", maxCellChars*2+10)
	enc := EncodeRow([]string{"S1", big, "tail"})
	if len(enc) != 6 { // 3 home cells + 3 chunks
		t.Fatalf("expected 6 cells, got %d", len(enc))
	}
	if enc[1] != "#chunks=3" {
		t.Fatalf("unexpected marker %q", enc[1])
	}
	for _, c := range enc[3:] {
		if len(c) > maxCellChars {
			t.Fatalf("chunk exceeds the cell limit: %d chars", len(c))
		}
	}
	if enc[2] != "tail" {
		t.Fatal("home cells after a chunked cell shifted position")
	}

	dec := DecodeRow(enc, 3)
	if dec[1] != big || dec[0] != "S1" || dec[2] != "tail" {
		t.Fatal("decode did not reassemble the original row")
	}
}

// Chunk cuts never split a multi-byte rune, so every chunk stays valid
// UTF-8 for the XML layer.
func TestSplitChunksKeepsRunesWhole(t *testing.T) {
	big := strings.Repeat("ñ", maxCellChars) // 2 bytes per rune
	for _, c := range splitChunks(big) {
		if !utf8.ValidString(c) {
			t.Fatal("chunk is not valid UTF-8")
		}
		if len(c) > maxCellChars {
			t.Fatalf("chunk exceeds the cell limit: %d bytes", len(c))
		}
	}
	if strings.Join(splitChunks(big), "") != big {
		t.Fatal("chunks do not concatenate back to the input")
	}
}
