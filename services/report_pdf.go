package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"

	"equipment-checklist-api/models"
)

// PDFReportRenderer is the default ReportRenderer: an A4 report with the
// submission header, itemized checklist lines, approval metadata, both
// signatures side by side, and the evidence photo listing. Exact layout is
// cosmetic; only legibility matters.
type PDFReportRenderer struct{}

// NewPDFReportRenderer returns the default renderer.
func NewPDFReportRenderer() *PDFReportRenderer {
	return &PDFReportRenderer{}
}

// Render implements ReportRenderer.
func (r *PDFReportRenderer) Render(sub models.Submission, items []models.SubmissionItem, photos []models.Photo, appr models.Approval) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Equipment Checklist - Approved Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Equipment: %s", sub.EquipmentName))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Date: %s   |   Created: %s", sub.Date, sub.CreatedAt))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Operator: %s (%s)", sub.OperatorFullName, sub.OperatorUsername))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Overall status: %s", sub.OverallStatus))
	pdf.Ln(7)

	if sub.Note != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 5, "Operator note:")
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, truncate(sub.Note, 240), "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Checklist items")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	for _, it := range items {
		line := fmt.Sprintf("- %s | Status: %s | Comment: %s", it.ItemText, it.Status, truncate(it.Comment, 60))
		pdf.MultiCell(0, 4.5, truncate(line, 180), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Supervisor approval")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Supervisor: %s (%s)", appr.SupervisorFullName, appr.SupervisorUsername))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Approved: %s   |   Conformity: %s", appr.ApprovedAt, appr.Conforme))
	pdf.Ln(5)
	if appr.Observations != "" {
		pdf.MultiCell(0, 5, "Observations: "+truncate(appr.Observations, 240), "", "L", false)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	y := pdf.GetY()
	pdf.Text(20, y+4, "Operator signature")
	pdf.Text(110, y+4, "Supervisor signature")
	embedSignature(pdf, "sig-operator", sub.OperatorSignatureB64, 20, y+6)
	embedSignature(pdf, "sig-supervisor", appr.SupervisorSignatureB64, 110, y+6)
	pdf.SetY(y + 42)

	if len(photos) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, "Evidence (attached photos)")
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 9)
		for _, p := range photos {
			pdf.Cell(0, 4.5, truncate(fmt.Sprintf("- Item %s: %s", p.ItemID, p.Filename), 140))
			pdf.Ln(4.5)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// embedSignature draws one signature image. Any decode or registration
// failure only skips the image; the report itself must survive.
func embedSignature(pdf *gofpdf.Fpdf, name, b64 string, x, y float64) {
	if b64 == "" {
		return
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		log.Printf("report: skipping signature %s: %v", name, err)
		return
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		log.Printf("report: skipping signature %s: %v", name, err)
		return
	}
	// Re-encode so gofpdf always receives a well-formed PNG, whatever the
	// capture device produced.
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		log.Printf("report: skipping signature %s: %v", name, err)
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	if pdf.RegisterImageOptionsReader(name, opts, &pngBuf) == nil || pdf.Err() {
		log.Printf("report: skipping signature %s: registration failed", name)
		pdf.ClearError()
		return
	}
	pdf.ImageOptions(name, x, y, 75, 30, false, opts, 0, "")
}

// truncate shortens s to at most max bytes, cutting on a rune boundary so
// accented text never yields a torn trailing byte.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
