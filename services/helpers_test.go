package services

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"equipment-checklist-api/models"
	"equipment-checklist-api/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "store.xlsx"))
	if err != nil {
		t.Fatalf("store.Open returned error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testChecklist() *models.ChecklistConfig {
	return &models.ChecklistConfig{
		Equipment: []models.Equipment{
			{
				Name: "Forklift-1",
				Items: []models.ChecklistItem{
					{ID: "I1", Text: "Brakes respond"},
					{ID: "I2", Text: "Hydraulics hold pressure"},
					{ID: "I3", Text: "Horn and lights work"},
				},
			},
		},
	}
}

// inkedSignature returns a base64 PNG with a solid black block, well above
// the blank-detection threshold.
func inkedSignature(t *testing.T) string {
	t.Helper()
	return signaturePNG(t, 30)
}

// blankSignature returns a base64 PNG that is entirely near-white.
func blankSignature(t *testing.T) string {
	t.Helper()
	return signaturePNG(t, 0)
}

func signaturePNG(t *testing.T, inkSize int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.White)
		}
	}
	for y := 0; y < inkSize; y++ {
		for x := 0; x < inkSize; x++ {
			img.Set(x, y, color.Black)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// stubRenderer stands in for the external PDF collaborator.
type stubRenderer struct {
	calls int
}

func (r *stubRenderer) Render(sub models.Submission, items []models.SubmissionItem, photos []models.Photo, appr models.Approval) ([]byte, error) {
	r.calls++
	return []byte("%PDF-1.4 stub report"), nil
}

// fixedRenderer returns a caller-chosen payload, for size-sensitive cases.
type fixedRenderer struct {
	payload []byte
}

func (r *fixedRenderer) Render(sub models.Submission, items []models.SubmissionItem, photos []models.Photo, appr models.Approval) ([]byte, error) {
	return r.payload, nil
}

func operatorUser() models.User {
	return models.User{Username: "op1", Role: models.RoleOperator, FullName: "Olga Operator", IsActive: true}
}

func supervisorUser() models.User {
	return models.User{Username: "sup1", Role: models.RoleSupervisor, FullName: "Sam Supervisor", IsActive: true}
}
