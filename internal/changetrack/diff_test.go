package changetrack

import (
	"testing"
	"time"

	"heritageportal/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject() model.Project {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return model.Project{
		ID:           uuid.New(),
		MonumentID:   uuid.New(),
		ContractorID: uuid.New(),
		Name:         "North facade restoration",
		Description:  "Stone cleaning and repointing",
		Budget:       1_000_000,
		Priority:     model.PriorityHigh,
		Status:       model.ProjectActive,
		Progress:     40,
		Timeline: model.Timeline{
			Start:                  start,
			End:                    start.AddDate(0, 6, 0),
			ExpectedDurationMonths: 6,
		},
	}
}

func TestProjectDiffIdenticalSnapshots(t *testing.T) {
	p := sampleProject()
	assert.Empty(t, ProjectDiff(p, p))
}

func TestProjectDiffScalarFields(t *testing.T) {
	oldP := sampleProject()
	newP := oldP
	newP.Name = "North facade restoration phase 2"
	newP.Budget = 1_200_000
	newP.Progress = 55

	changes := ProjectDiff(oldP, newP)
	require.Len(t, changes, 3)

	byField := map[string]model.Change{}
	for _, ch := range changes {
		byField[ch.Field] = ch
	}
	assert.Equal(t, "North facade restoration", byField["name"].OldValue)
	assert.Equal(t, "North facade restoration phase 2", byField["name"].NewValue)
	assert.Equal(t, int64(1_000_000), byField["budget"].OldValue)
	assert.Equal(t, int64(1_200_000), byField["budget"].NewValue)
	assert.Equal(t, 40, byField["progress"].OldValue)
	assert.Equal(t, 55, byField["progress"].NewValue)
}

func TestProjectDiffIgnoresBookkeepingFields(t *testing.T) {
	oldP := sampleProject()
	newP := oldP
	newP.ID = uuid.New()
	newP.CreatedAt = time.Now()
	newP.UpdatedAt = time.Now()
	newP.EditHistory = model.AuditHistory{{ID: uuid.New()}}

	assert.Empty(t, ProjectDiff(oldP, newP))
}

func TestProjectDiffNilPointerEqualsZeroTime(t *testing.T) {
	oldP := sampleProject()
	newP := oldP
	zero := time.Time{}
	newP.ActualStartDate = &zero

	// nil and a pointer to the zero time both normalize to unset
	assert.Empty(t, ProjectDiff(oldP, newP))
}

func TestProjectDiffTimestampTransition(t *testing.T) {
	oldP := sampleProject()
	newP := oldP
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	newP.PausedAt = &now

	changes := ProjectDiff(oldP, newP)
	require.Len(t, changes, 1)
	assert.Equal(t, "pausedAt", changes[0].Field)
}

func TestProjectDiffNestedTimelinePaths(t *testing.T) {
	oldP := sampleProject()
	newP := oldP
	newP.Timeline.End = newP.Timeline.End.AddDate(0, 1, 0)
	newP.Timeline.ExpectedDurationMonths = 7

	changes := ProjectDiff(oldP, newP)
	require.Len(t, changes, 2)
	assert.Equal(t, "timeline.end", changes[0].Field)
	assert.Equal(t, "timeline.expectedDurationMonths", changes[1].Field)
}

func TestProjectDiffWorkersEmitsCountsOnly(t *testing.T) {
	oldP := sampleProject()
	newP := oldP
	newP.Workers = model.WorkerRefs{
		{ID: uuid.New(), Name: "Mason A", Mobile: "9000000001"},
		{ID: uuid.New(), Name: "Mason B", Mobile: "9000000002"},
	}

	changes := ProjectDiff(oldP, newP)
	require.Len(t, changes, 1)
	assert.Equal(t, "workers", changes[0].Field)
	assert.Equal(t, 0, changes[0].OldValue)
	assert.Equal(t, 2, changes[0].NewValue)
}

func TestProjectDiffWorkersInPlaceEditStillCounts(t *testing.T) {
	oldP := sampleProject()
	oldP.Workers = model.WorkerRefs{{ID: uuid.New(), Name: "Mason A", Mobile: "9000000001"}}
	newP := oldP
	newP.Workers = model.WorkerRefs{{ID: oldP.Workers[0].ID, Name: "Mason A", Mobile: "9000000099"}}

	// Same length, different content: one change with equal counts
	changes := ProjectDiff(oldP, newP)
	require.Len(t, changes, 1)
	assert.Equal(t, "workers", changes[0].Field)
	assert.Equal(t, 1, changes[0].OldValue)
	assert.Equal(t, 1, changes[0].NewValue)
}

func TestProjectDiffExcludeByDottedPath(t *testing.T) {
	oldP := sampleProject()
	newP := oldP
	newP.Status = model.ProjectPaused
	newP.Timeline.Start = newP.Timeline.Start.AddDate(0, 0, 1)

	changes := ProjectDiff(oldP, newP, "timeline.start")
	require.Len(t, changes, 1)
	assert.Equal(t, "status", changes[0].Field)
}

func TestMilestoneDiffReviewAndFinancialRecord(t *testing.T) {
	oldM := model.Milestone{
		ID:     uuid.New(),
		Name:   "Scaffolding",
		Status: model.MilestoneActive,
	}
	newM := oldM
	newM.AdminReview = model.ReviewSubmitted
	newM.QualityReview = model.InspectionRecords{{ID: uuid.New(), Feedback: []string{"looks good"}}}
	newM.FinancialRecord = &model.FinancialRecord{SubmittedBy: uuid.New()}

	changes := MilestoneDiff(oldM, newM)
	require.Len(t, changes, 3)

	byField := map[string]model.Change{}
	for _, ch := range changes {
		byField[ch.Field] = ch
	}
	assert.Equal(t, model.ReviewUnset, byField["adminReview"].OldValue)
	assert.Equal(t, model.ReviewSubmitted, byField["adminReview"].NewValue)
	assert.Equal(t, 0, byField["qualityManagerReview"].OldValue)
	assert.Equal(t, 1, byField["qualityManagerReview"].NewValue)
	assert.Equal(t, 0, byField["financialRecord"].OldValue)
	assert.Equal(t, 1, byField["financialRecord"].NewValue)
}

func TestMilestoneDiffProofOfWorkStages(t *testing.T) {
	oldM := model.Milestone{ID: uuid.New(), Name: "Scaffolding"}
	newM := oldM
	newM.ProofOfWork.Photos.Before = []model.ProofPhoto{{File: "b1.jpg", About: "before"}}
	newM.ProofOfWork.Photos.After = []model.ProofPhoto{{File: "a1.jpg"}, {File: "a2.jpg"}}
	newM.ProofOfWork.Documents = []model.ProofDocument{{File: "report.pdf", Name: "Report"}}

	changes := MilestoneDiff(oldM, newM)
	require.Len(t, changes, 3)
	assert.Equal(t, "proofOfWork.photos.before", changes[0].Field)
	assert.Equal(t, "proofOfWork.photos.after", changes[1].Field)
	assert.Equal(t, 2, changes[1].NewValue)
	assert.Equal(t, "proofOfWork.documents", changes[2].Field)
}

func TestRecordPrependsNewestFirst(t *testing.T) {
	actor := model.Actor{ID: uuid.New(), Name: "Asha", Role: model.RoleAdmin}
	t1 := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	history := Record(nil, []model.Change{{Field: "status", OldValue: "scheduled", NewValue: "active"}}, actor, t1)
	require.Len(t, history, 1)

	history = Record(history, []model.Change{{Field: "progress", OldValue: 0, NewValue: 10}}, actor, t2)
	require.Len(t, history, 2)

	assert.Equal(t, t2, history[0].EditedAt)
	assert.Equal(t, t1, history[1].EditedAt)
	assert.Equal(t, "progress", history[0].Changes[0].Field)
	assert.Equal(t, "Asha", history[0].EditedBy)
	assert.Equal(t, actor.ID, history[0].UserID)
	assert.NotEqual(t, uuid.Nil, history[0].ID)
}

func TestRecordEmptyChangesIsNoOp(t *testing.T) {
	actor := model.Actor{ID: uuid.New(), Name: "Asha", Role: model.RoleAdmin}
	existing := model.AuditHistory{{ID: uuid.New(), EditedBy: "Asha"}}

	out := Record(existing, nil, actor, time.Now())
	assert.Len(t, out, 1)
	assert.Equal(t, existing[0].ID, out[0].ID)
}

func TestRecordDoesNotMutateInput(t *testing.T) {
	actor := model.Actor{ID: uuid.New(), Name: "Asha", Role: model.RoleAdmin}
	first := model.AuditEntry{ID: uuid.New(), EditedBy: "Asha"}
	existing := model.AuditHistory{first}

	_ = Record(existing, []model.Change{{Field: "name", OldValue: "a", NewValue: "b"}}, actor, time.Now())

	require.Len(t, existing, 1)
	assert.Equal(t, first.ID, existing[0].ID)
}
