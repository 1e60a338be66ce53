package workflow

import (
	"time"

	"heritageportal/internal/changetrack"
	"heritageportal/internal/model"

	"github.com/google/uuid"
)

// AddInspectionRecord appends a quality-manager inspection to the
// milestone. The collection is append-only (oldest first) and is frozen
// from the moment the milestone is forwarded to admin review.
func AddInspectionRecord(m model.Milestone, rec model.InspectionRecord, actor model.Actor, now time.Time) (model.Milestone, error) {
	if !Allowed(OpInspectionAdd, actor.Role) {
		return m, ErrForbidden
	}
	if m.AdminReview != model.ReviewUnset {
		return m, ErrForbidden
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.SubmittedBy = actor.ID
	rec.SubmittedAt = now

	snapshot := m
	review := make(model.InspectionRecords, 0, len(m.QualityReview)+1)
	review = append(review, m.QualityReview...)
	m.QualityReview = append(review, rec)
	m.EditHistory = changetrack.Record(m.EditHistory, changetrack.MilestoneDiff(snapshot, m), actor, now)
	return m, nil
}

// ForwardToAdmin hands the inspection dossier to admin review. One-shot:
// once forwarded the milestone cannot be forwarded again and no further
// inspection records are accepted.
func ForwardToAdmin(m model.Milestone, actor model.Actor, now time.Time) (model.Milestone, error) {
	if !Allowed(OpInspectionForward, actor.Role) {
		return m, ErrForbidden
	}
	if m.AdminReview != model.ReviewUnset {
		return m, ErrAlreadyForwarded
	}
	if len(m.QualityReview) == 0 {
		return m, ErrInvalidState
	}

	snapshot := m
	m.AdminReview = model.ReviewSubmitted
	m.EditHistory = changetrack.Record(m.EditHistory, changetrack.MilestoneDiff(snapshot, m), actor, now)
	return m, nil
}

// ApproveReview moves the admin review gate to its terminal approved
// state, unlocking milestone completion.
func ApproveReview(m model.Milestone, actor model.Actor, now time.Time) (model.Milestone, error) {
	if !Allowed(OpReviewApprove, actor.Role) {
		return m, ErrForbidden
	}
	if m.AdminReview != model.ReviewSubmitted {
		return m, ErrInvalidState
	}

	snapshot := m
	m.AdminReview = model.ReviewApproved
	m.EditHistory = changetrack.Record(m.EditHistory, changetrack.MilestoneDiff(snapshot, m), actor, now)
	return m, nil
}

// SubmitBill attaches the one financial record a milestone may carry.
// Requires the milestone to be completed; resubmission is rejected.
func SubmitBill(m model.Milestone, rec model.FinancialRecord, actor model.Actor, now time.Time) (model.Milestone, error) {
	if !Allowed(OpBillSubmit, actor.Role) {
		return m, ErrForbidden
	}
	if m.Status != model.MilestoneCompleted {
		return m, ErrInvalidState
	}
	if m.FinancialRecord != nil {
		return m, ErrAlreadySubmitted
	}

	rec.SubmittedBy = actor.ID
	rec.SubmittedAt = now

	snapshot := m
	m.FinancialRecord = &rec
	m.EditHistory = changetrack.Record(m.EditHistory, changetrack.MilestoneDiff(snapshot, m), actor, now)
	return m, nil
}
