package services

import (
	"encoding/base64"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"equipment-checklist-api/models"
	"equipment-checklist-api/store"
)

// SubmissionService orchestrates the checklist workflow: operator submit,
// supervisor approve, and the read paths both sides use. It owns the
// PENDING -> APPROVED state machine.
type SubmissionService struct {
	Store     *store.Store
	Checklist *models.ChecklistConfig
	Renderer  ReportRenderer
}

// NewSubmissionService wires the workflow over its collaborators.
func NewSubmissionService(s *store.Store, checklist *models.ChecklistConfig, renderer ReportRenderer) *SubmissionService {
	return &SubmissionService{Store: s, Checklist: checklist, Renderer: renderer}
}

// ItemResult is one checklist line as filled by the operator.
type ItemResult struct {
	ItemID  string `json:"item_id"`
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// PhotoUpload is fault evidence for one item.
type PhotoUpload struct {
	ItemID   string `json:"item_id"`
	Filename string `json:"filename"`
	PhotoB64 string `json:"photo_b64"`
}

// SubmitRequest carries everything the operator sends in one submission.
type SubmitRequest struct {
	EquipmentName        string        `json:"equipment_name"`
	OverallStatus        string        `json:"overall_status"`
	Note                 string        `json:"note"`
	OperatorSignatureB64 string        `json:"operator_signature_b64"`
	Items                []ItemResult  `json:"items"`
	Photos               []PhotoUpload `json:"photos"`
}

const submissionIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewSubmissionID allocates a submission id: time-based prefix plus a short
// random suffix for practical uniqueness.
func NewSubmissionID() string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = submissionIDCharset[rand.Intn(len(submissionIDCharset))]
	}
	return "S" + time.Now().Format("20060102150405") + string(suffix)
}

// Submit validates a whole submission and, only if everything passes, writes
// the parent row followed by its item and photo batches. Validation failures
// leave the store untouched; the write sequence itself is not transactional,
// so the parent is written first and a crash mid-batch can only leave a
// parent without children.
func (s *SubmissionService) Submit(operator models.User, req SubmitRequest) (string, error) {
	configItems, ok := s.Checklist.ItemsFor(req.EquipmentName)
	if !ok {
		return "", &ValidationError{Msg: fmt.Sprintf("unknown equipment %q", req.EquipmentName)}
	}
	if !models.ValidCondition(req.OverallStatus) {
		return "", &ValidationError{Msg: fmt.Sprintf("invalid overall status %q", req.OverallStatus)}
	}

	results := make(map[string]ItemResult, len(req.Items))
	for _, r := range req.Items {
		id := strings.TrimSpace(r.ItemID)
		if _, dup := results[id]; dup {
			return "", &ValidationError{Msg: fmt.Sprintf("duplicate result for item %s", id)}
		}
		if !models.ValidCondition(r.Status) {
			return "", &ValidationError{Msg: fmt.Sprintf("invalid status %q for item %s", r.Status, id)}
		}
		results[id] = r
	}

	photos := make(map[string]PhotoUpload, len(req.Photos))
	for _, p := range req.Photos {
		id := strings.TrimSpace(p.ItemID)
		if _, known := results[id]; !known {
			return "", &ValidationError{Msg: fmt.Sprintf("photo attached to unknown item %s", id)}
		}
		photos[id] = p
	}

	// Every configured item must be answered, and every faulted item needs
	// its evidence photo.
	var itemRows [][]string
	var photoRows [][]string
	for _, ci := range configItems {
		r, answered := results[ci.ID]
		if !answered {
			return "", &ValidationError{Msg: fmt.Sprintf("missing result for item %s (%s)", ci.ID, ci.Text)}
		}
		delete(results, ci.ID)

		if r.Status == models.ConditionWithFault {
			if _, has := photos[ci.ID]; !has {
				return "", &ValidationError{Msg: fmt.Sprintf("item %s is %s and requires an evidence photo", ci.ID, models.ConditionWithFault)}
			}
		}

		item := models.SubmissionItem{
			ItemID:   ci.ID,
			ItemText: ci.Text, // snapshot: later config edits must not reach stored rows
			Status:   r.Status,
			Comment:  r.Comment,
		}
		itemRows = append(itemRows, item.Row())
	}
	for id := range results {
		return "", &ValidationError{Msg: fmt.Sprintf("result for unknown item %s", id)}
	}

	if IsBlankSignature(req.OperatorSignatureB64) {
		return "", &ValidationError{Msg: "operator signature is missing or blank"}
	}

	sid := NewSubmissionID()
	now := nowISO()
	sub := models.Submission{
		SubmissionID:         sid,
		Date:                 todayISO(),
		CreatedAt:            now,
		EquipmentName:        req.EquipmentName,
		OperatorUsername:     operator.Username,
		OperatorFullName:     operator.FullName,
		OverallStatus:        req.OverallStatus,
		Note:                 req.Note,
		OperatorSignatureB64: req.OperatorSignatureB64,
		Status:               models.StatusPending,
		UpdatedAt:            now,
	}

	for i := range itemRows {
		itemRows[i][0] = sid
	}
	for _, ci := range configItems {
		p, has := photos[ci.ID]
		if !has {
			continue
		}
		filename := strings.TrimSpace(p.Filename)
		if filename == "" {
			filename = fmt.Sprintf("item-%s-%s.png", ci.ID, uuid.NewString())
		}
		photo := models.Photo{
			SubmissionID: sid,
			ItemID:       ci.ID,
			Filename:     filename,
			PhotoB64:     p.PhotoB64,
		}
		photoRows = append(photoRows, photo.Row())
	}

	// Parent before children. Child batches go through ReplaceChildren so a
	// retried submission id never accumulates duplicate rows.
	if err := s.Store.Append(store.TableSubmissions, sub.Row()); err != nil {
		return "", err
	}
	if err := s.Store.ReplaceChildren(store.TableSubmissionItems, "submission_id", sid, itemRows); err != nil {
		return "", err
	}
	if err := s.Store.ReplaceChildren(store.TablePhotos, "submission_id", sid, photoRows); err != nil {
		return "", err
	}
	return sid, nil
}

// Approve takes a PENDING submission through its single terminal transition:
// mark APPROVED, render the frozen report, and replace-then-append the
// approval row. A non-conforming verdict still approves; conformity is an
// attribute of the approval record.
func (s *SubmissionService) Approve(submissionID string, supervisor models.User, conforme, observations, signatureB64 string) error {
	sub, _, _, _, err := s.Detail(submissionID)
	if err != nil {
		return err
	}
	if sub.Status != models.StatusPending {
		return &StateError{Msg: fmt.Sprintf("submission %s is %s, not %s", submissionID, sub.Status, models.StatusPending)}
	}
	if !models.ValidConforme(conforme) {
		return &ValidationError{Msg: fmt.Sprintf("invalid conformity verdict %q", conforme)}
	}
	if IsBlankSignature(signatureB64) {
		return &ValidationError{Msg: "supervisor signature is missing or blank"}
	}

	ok, err := s.Store.UpdateFieldsByKey(store.TableSubmissions, "submission_id", submissionID,
		map[string]string{"status": models.StatusApproved, "updated_at": nowISO()})
	if err != nil {
		return err
	}
	if !ok {
		return &IntegrityError{Msg: "submission row vanished during approve: " + submissionID}
	}

	sub, items, photos, _, err := s.Detail(submissionID)
	if err != nil {
		return err
	}

	appr := models.Approval{
		SubmissionID:           submissionID,
		ApprovedAt:             nowISO(),
		SupervisorUsername:     supervisor.Username,
		SupervisorFullName:     supervisor.FullName,
		Conforme:               conforme,
		Observations:           observations,
		SupervisorSignatureB64: signatureB64,
	}

	report, err := s.Renderer.Render(sub, items, photos, appr)
	if err != nil {
		return fmt.Errorf("render report for %s: %w", submissionID, err)
	}
	appr.RenderedReportB64 = base64.StdEncoding.EncodeToString(report)

	return s.Store.ReplaceChildren(store.TableApprovals, "submission_id", submissionID,
		[][]string{appr.Row()})
}

// Detail fetches a submission with its items, photos and (possibly absent)
// approval.
func (s *SubmissionService) Detail(submissionID string) (models.Submission, []models.SubmissionItem, []models.Photo, *models.Approval, error) {
	row, found, err := s.Store.FindByKey(store.TableSubmissions, "submission_id", submissionID)
	if err != nil {
		return models.Submission{}, nil, nil, nil, err
	}
	if !found {
		return models.Submission{}, nil, nil, nil, &NotFoundError{Entity: "submission", Key: submissionID}
	}
	sub := models.SubmissionFromRow(row)

	itemRows, err := s.Store.AllRows(store.TableSubmissionItems)
	if err != nil {
		return models.Submission{}, nil, nil, nil, err
	}
	var items []models.SubmissionItem
	for _, r := range itemRows {
		it := models.SubmissionItemFromRow(r)
		if it.SubmissionID == submissionID {
			items = append(items, it)
		}
	}

	photoRows, err := s.Store.AllRows(store.TablePhotos)
	if err != nil {
		return models.Submission{}, nil, nil, nil, err
	}
	var photos []models.Photo
	for _, r := range photoRows {
		p := models.PhotoFromRow(r)
		if p.SubmissionID == submissionID {
			photos = append(photos, p)
		}
	}

	apprRow, found, err := s.Store.FindByKey(store.TableApprovals, "submission_id", submissionID)
	if err != nil {
		return models.Submission{}, nil, nil, nil, err
	}
	var appr *models.Approval
	if found {
		a := models.ApprovalFromRow(apprRow)
		appr = &a
	}
	return sub, items, photos, appr, nil
}

// ListFilter narrows List and Stats results. Empty fields match everything.
type ListFilter struct {
	Status           string
	EquipmentName    string
	OperatorUsername string
}

// List returns submissions matching the filter, newest first by created_at.
func (s *SubmissionService) List(filter ListFilter) ([]models.Submission, error) {
	rows, err := s.Store.AllRows(store.TableSubmissions)
	if err != nil {
		return nil, err
	}
	subs := make([]models.Submission, 0, len(rows))
	for _, r := range rows {
		sub := models.SubmissionFromRow(r)
		if filter.Status != "" && !strings.EqualFold(sub.Status, filter.Status) {
			continue
		}
		if filter.EquipmentName != "" && sub.EquipmentName != filter.EquipmentName {
			continue
		}
		if filter.OperatorUsername != "" && !strings.EqualFold(sub.OperatorUsername, filter.OperatorUsername) {
			continue
		}
		subs = append(subs, sub)
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].CreatedAt > subs[j].CreatedAt
	})
	return subs, nil
}

// Report returns the frozen PDF of an approved submission.
func (s *SubmissionService) Report(submissionID string) ([]byte, error) {
	sub, _, _, appr, err := s.Detail(submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.StatusApproved {
		return nil, &StateError{Msg: fmt.Sprintf("submission %s is not approved yet", submissionID)}
	}
	if appr == nil || appr.RenderedReportB64 == "" {
		return nil, &NotFoundError{Entity: "report for submission", Key: submissionID}
	}
	report, err := base64.StdEncoding.DecodeString(appr.RenderedReportB64)
	if err != nil {
		return nil, &IntegrityError{Msg: "stored report for " + submissionID + " is not valid base64"}
	}
	return report, nil
}

// DashboardStats summarizes the submissions table for the supervisor view.
type DashboardStats struct {
	Total     int `json:"total"`
	Approved  int `json:"approved"`
	Pending   int `json:"pending"`
	WithFault int `json:"with_fault"`
}

// Stats counts submissions matching the filter.
func (s *SubmissionService) Stats(filter ListFilter) (DashboardStats, error) {
	subs, err := s.List(filter)
	if err != nil {
		return DashboardStats{}, err
	}
	var stats DashboardStats
	for _, sub := range subs {
		stats.Total++
		switch sub.Status {
		case models.StatusApproved:
			stats.Approved++
		case models.StatusPending:
			stats.Pending++
		}
		if sub.OverallStatus == models.ConditionWithFault {
			stats.WithFault++
		}
	}
	return stats, nil
}
