package workflow

import (
	"testing"
	"time"

	"heritageportal/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeMilestone() model.Milestone {
	return model.Milestone{
		ID:     uuid.New(),
		Name:   "Stone repointing",
		Status: model.MilestoneActive,
	}
}

func inspection(feedback ...string) model.InspectionRecord {
	return model.InspectionRecord{Feedback: feedback}
}

func TestAddInspectionRecord(t *testing.T) {
	now := time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)

	m, err := AddInspectionRecord(activeMilestone(), inspection("mortar mix verified"), qualityManager, now)
	require.NoError(t, err)
	require.Len(t, m.QualityReview, 1)

	rec := m.QualityReview[0]
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, qualityManager.ID, rec.SubmittedBy)
	assert.Equal(t, now, rec.SubmittedAt)
	assert.Equal(t, []string{"mortar mix verified"}, rec.Feedback)
	require.Len(t, m.EditHistory, 1)
}

func TestAddInspectionRecordAppendsOldestFirst(t *testing.T) {
	now := time.Now()

	m, err := AddInspectionRecord(activeMilestone(), inspection("first visit"), qualityManager, now)
	require.NoError(t, err)
	m, err = AddInspectionRecord(m, inspection("second visit"), qualityManager, now.Add(time.Hour))
	require.NoError(t, err)

	require.Len(t, m.QualityReview, 2)
	assert.Equal(t, []string{"first visit"}, m.QualityReview[0].Feedback)
	assert.Equal(t, []string{"second visit"}, m.QualityReview[1].Feedback)

	latest := m.LatestInspection()
	require.NotNil(t, latest)
	assert.Equal(t, []string{"second visit"}, latest.Feedback)
}

func TestAddInspectionRecordRejections(t *testing.T) {
	now := time.Now()

	// Only the quality manager may inspect
	for _, actor := range []model.Actor{admin, contractor, worker, finOfficer} {
		_, err := AddInspectionRecord(activeMilestone(), inspection("x"), actor, now)
		assert.ErrorIs(t, err, ErrForbidden, "role %s", actor.Role)
	}

	// Frozen once the dossier leaves quality review
	for _, review := range []string{model.ReviewSubmitted, model.ReviewApproved} {
		m := activeMilestone()
		m.AdminReview = review
		_, err := AddInspectionRecord(m, inspection("x"), qualityManager, now)
		assert.ErrorIs(t, err, ErrForbidden, "review %q", review)
	}
}

func TestAddInspectionRecordDoesNotMutateInput(t *testing.T) {
	orig := activeMilestone()
	orig.QualityReview = model.InspectionRecords{{ID: uuid.New(), Feedback: []string{"first"}}}

	_, err := AddInspectionRecord(orig, inspection("second"), qualityManager, time.Now())
	require.NoError(t, err)
	assert.Len(t, orig.QualityReview, 1)
}

func TestForwardToAdmin(t *testing.T) {
	now := time.Now()

	m, err := AddInspectionRecord(activeMilestone(), inspection("ready"), qualityManager, now)
	require.NoError(t, err)

	m, err = ForwardToAdmin(m, qualityManager, now)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewSubmitted, m.AdminReview)

	// One-shot
	_, err = ForwardToAdmin(m, qualityManager, now)
	assert.ErrorIs(t, err, ErrAlreadyForwarded)

	// No inspections yet
	_, err = ForwardToAdmin(activeMilestone(), qualityManager, now)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = ForwardToAdmin(activeMilestone(), admin, now)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApproveReview(t *testing.T) {
	now := time.Now()

	m := activeMilestone()
	m.AdminReview = model.ReviewSubmitted

	approved, err := ApproveReview(m, admin, now)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewApproved, approved.AdminReview)

	// Monotonic: approving twice, or before submission, is invalid
	_, err = ApproveReview(approved, admin, now)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = ApproveReview(activeMilestone(), admin, now)
	assert.ErrorIs(t, err, ErrInvalidState)

	// Admin only; even super admin cannot approve
	for _, actor := range []model.Actor{superAdmin, qualityManager, contractor, finOfficer} {
		_, err := ApproveReview(m, actor, now)
		assert.ErrorIs(t, err, ErrForbidden, "role %s", actor.Role)
	}
}

func TestFullApprovalFlow(t *testing.T) {
	now := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

	m, err := StartMilestone(model.Milestone{ID: uuid.New(), Name: "Dome gilding", Status: model.MilestonePending}, contractor, now)
	require.NoError(t, err)

	m, err = AddInspectionRecord(m, inspection("gold leaf applied evenly"), qualityManager, now.Add(24*time.Hour))
	require.NoError(t, err)
	m, err = ForwardToAdmin(m, qualityManager, now.Add(25*time.Hour))
	require.NoError(t, err)
	m, err = ApproveReview(m, admin, now.Add(48*time.Hour))
	require.NoError(t, err)
	m, err = CompleteMilestone(m, admin, now.Add(49*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, model.MilestoneCompleted, m.Status)
	assert.Equal(t, model.ReviewApproved, m.AdminReview)
	// start, inspect, forward, approve, complete
	assert.Len(t, m.EditHistory, 5)
	assert.Equal(t, admin.ID, m.EditHistory[0].UserID)
}

func TestSubmitBill(t *testing.T) {
	now := time.Now()
	bill := model.FinancialRecord{
		BillDetails: model.BillDetails{
			BillNumber: "INV-2024-019",
			Amount:     decimal.NewFromInt(250_000),
		},
	}

	completedM := activeMilestone()
	completedM.Status = model.MilestoneCompleted
	completedM.AdminReview = model.ReviewApproved

	m, err := SubmitBill(completedM, bill, finOfficer, now)
	require.NoError(t, err)
	require.NotNil(t, m.FinancialRecord)
	assert.Equal(t, finOfficer.ID, m.FinancialRecord.SubmittedBy)
	assert.Equal(t, now, m.FinancialRecord.SubmittedAt)
	assert.True(t, m.FinancialRecord.BillDetails.Amount.Equal(decimal.NewFromInt(250_000)))

	// One financial record per milestone
	_, err = SubmitBill(m, bill, finOfficer, now)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	// Only on completed milestones
	_, err = SubmitBill(activeMilestone(), bill, finOfficer, now)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = SubmitBill(completedM, bill, admin, now)
	assert.ErrorIs(t, err, ErrForbidden)
}
