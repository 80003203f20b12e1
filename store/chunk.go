package store

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// XLSX caps a cell at 32,767 characters and excelize truncates longer
// values without an error. Base64 photo and report blobs routinely exceed
// that, so oversized values are split across continuation cells appended
// after the table's regular columns: the home cell holds a chunk-count
// marker and the chunks follow, consumed left to right in marker order on
// read. A literal value that happens to start with the marker is stored as
// a single chunk so it round-trips unchanged.
const (
	maxCellChars  = 32767
	chunkedPrefix = "#chunks="
)

// EncodeRow splits oversized cells into continuation cells. Rows whose
// cells all fit come back unchanged in content and width.
func EncodeRow(row []string) []string {
	out := make([]string, len(row))
	var overflow []string
	for i, v := range row {
		if len(v) <= maxCellChars && !strings.HasPrefix(v, chunkedPrefix) {
			out[i] = v
			continue
		}
		chunks := splitChunks(v)
		out[i] = chunkedPrefix + strconv.Itoa(len(chunks))
		overflow = append(overflow, chunks...)
	}
	return append(out, overflow...)
}

// DecodeRow reassembles chunked cells and pads the row to width.
func DecodeRow(row []string, width int) []string {
	out := make([]string, width)
	next := width
	for i := 0; i < width && i < len(row); i++ {
		n, ok := chunkCount(row[i])
		if !ok {
			out[i] = row[i]
			continue
		}
		var b strings.Builder
		for ; n > 0 && next < len(row); n-- {
			b.WriteString(row[next])
			next++
		}
		out[i] = b.String()
	}
	return out
}

// splitChunks cuts v into pieces of at most maxCellChars bytes, never
// splitting a multi-byte rune. Byte-sized chunks stay under the character
// limit for any UTF-8 input.
func splitChunks(v string) []string {
	var chunks []string
	for len(v) > maxCellChars {
		cut := maxCellChars
		for !utf8.RuneStart(v[cut]) {
			cut--
		}
		chunks = append(chunks, v[:cut])
		v = v[cut:]
	}
	return append(chunks, v)
}

func chunkCount(v string) (int, bool) {
	tail, ok := strings.CutPrefix(v, chunkedPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(tail)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
