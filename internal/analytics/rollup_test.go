package analytics

import (
	"testing"
	"time"

	"heritageportal/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedProject(contractorID uuid.UUID, completedAt time.Time, spent int64) model.Project {
	return model.Project{
		ID:           uuid.New(),
		ContractorID: contractorID,
		Budget:       spent * 2,
		Status:       model.ProjectCompleted,
		CompletedAt:  &completedAt,
		Timeline: model.Timeline{
			Start: completedAt.AddDate(0, -3, 0),
			End:   completedAt.AddDate(0, 0, 7),
		},
		Milestones: []model.Milestone{
			{Budget: spent, Status: model.MilestoneCompleted},
		},
	}
}

func TestContractorRollupTotals(t *testing.T) {
	contractorID := uuid.New()
	otherID := uuid.New()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	done := completedProject(contractorID, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), 400_000)
	active := model.Project{
		ID:           uuid.New(),
		ContractorID: contractorID,
		Budget:       600_000,
		Status:       model.ProjectActive,
		Timeline: model.Timeline{
			Start: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		},
		Milestones: []model.Milestone{
			{Budget: 100_000, Status: model.MilestoneCompleted},
			{Budget: 200_000, Status: model.MilestoneActive},
		},
	}
	foreign := completedProject(otherID, now, 999_999)

	crew := model.User{ID: uuid.New(), Role: model.RoleWorker, CreatedBy: &contractorID}
	stranger := model.User{ID: uuid.New(), Role: model.RoleWorker, CreatedBy: &otherID}

	stats := ContractorRollup(contractorID, []model.Project{done, active, foreign}, []model.User{crew, stranger}, now)

	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, 1, stats.ActiveProjects)
	assert.Equal(t, 1, stats.CompletedProjects)
	assert.Equal(t, 1, stats.TotalWorkers)
	// 400k from the completed project + 100k from the active one
	assert.Equal(t, int64(500_000), stats.TotalEarnings)
	// 500k spent of 1.4M total budget
	assert.Equal(t, 36, stats.BudgetEfficiency)
	// Completed 7 days before the planned end
	assert.Equal(t, 100, stats.OnTimeDeliveryRate)
}

func TestContractorRollupOnTimeRate(t *testing.T) {
	contractorID := uuid.New()
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	onTime := completedProject(contractorID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 100_000)
	late := completedProject(contractorID, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 100_000)
	late.Timeline.End = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	stats := ContractorRollup(contractorID, []model.Project{onTime, late}, nil, now)
	assert.Equal(t, 50, stats.OnTimeDeliveryRate)

	// No completions at all: rate stays zero rather than dividing by zero
	empty := ContractorRollup(contractorID, nil, nil, now)
	assert.Equal(t, 0, empty.OnTimeDeliveryRate)
	assert.Equal(t, 0, empty.AverageProjectDuration)
}

func TestDeliveredOnTimeUnsetDates(t *testing.T) {
	// Missing completion or planned end counts as on time
	assert.True(t, deliveredOnTime(model.Project{}))

	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	at := end.AddDate(0, 0, 10)
	assert.False(t, deliveredOnTime(model.Project{
		Timeline:    model.Timeline{End: end},
		CompletedAt: &at,
	}))
}

func TestMonthlyProgressWindow(t *testing.T) {
	contractorID := uuid.New()
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	inWindow := completedProject(contractorID, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), 300_000)
	alsoApril := completedProject(contractorID, time.Date(2024, 4, 25, 0, 0, 0, 0, time.UTC), 200_000)
	tooOld := completedProject(contractorID, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), 500_000)

	buckets := monthlyProgress([]model.Project{inWindow, alsoApril, tooOld}, now)

	require.Len(t, buckets, 6)
	labels := make([]string, 0, 6)
	for _, b := range buckets {
		labels = append(labels, b.Month)
	}
	assert.Equal(t, []string{"Jan 2024", "Feb 2024", "Mar 2024", "Apr 2024", "May 2024", "Jun 2024"}, labels)

	assert.Equal(t, 2, buckets[3].CompletedCount)
	assert.Equal(t, int64(500_000), buckets[3].Earnings)
	for i, b := range buckets {
		if i == 3 {
			continue
		}
		assert.Zero(t, b.CompletedCount, "month %s", b.Month)
		assert.Zero(t, b.Earnings, "month %s", b.Month)
	}
}

func TestMonthlyProgressYearBoundary(t *testing.T) {
	now := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	buckets := monthlyProgress(nil, now)

	require.Len(t, buckets, 6)
	assert.Equal(t, "Sep 2023", buckets[0].Month)
	assert.Equal(t, "Feb 2024", buckets[5].Month)
}

func TestWorkerRollup(t *testing.T) {
	workerID := uuid.New()
	now := time.Now()

	assignedActive := model.Project{
		ID:      uuid.New(),
		Status:  model.ProjectActive,
		Workers: model.WorkerRefs{{ID: workerID, Name: "Mohan"}},
		Milestones: []model.Milestone{
			{Status: model.MilestoneCompleted},
			{Status: model.MilestonePending},
			{Status: model.MilestonePending},
		},
	}
	assignedDone := model.Project{
		ID:      uuid.New(),
		Status:  model.ProjectCompleted,
		Workers: model.WorkerRefs{{ID: workerID, Name: "Mohan"}},
		Milestones: []model.Milestone{
			{Status: model.MilestoneCompleted},
		},
	}
	unassigned := model.Project{
		ID:      uuid.New(),
		Status:  model.ProjectActive,
		Workers: model.WorkerRefs{{ID: uuid.New(), Name: "Someone else"}},
	}

	stats := WorkerRollup(workerID, []model.Project{assignedActive, assignedDone, unassigned}, now)

	assert.Equal(t, 2, stats.AssignedProjects)
	assert.Equal(t, 1, stats.ActiveProjects)
	assert.Equal(t, 1, stats.CompletedProjects)
	assert.Equal(t, 2, stats.CompletedMilestones)
	assert.Equal(t, 2, stats.PendingMilestones)
}

func TestMonumentRollup(t *testing.T) {
	monumentID := uuid.New()
	now := time.Now()

	half := model.Project{
		ID:         uuid.New(),
		MonumentID: monumentID,
		Budget:     400_000,
		Status:     model.ProjectActive,
		Milestones: []model.Milestone{
			{Budget: 100_000, Status: model.MilestoneCompleted},
			{Budget: 100_000, Status: model.MilestonePending},
		},
	}
	full := model.Project{
		ID:         uuid.New(),
		MonumentID: monumentID,
		Budget:     200_000,
		Status:     model.ProjectCompleted,
		Milestones: []model.Milestone{
			{Budget: 200_000, Status: model.MilestoneCompleted},
		},
	}
	elsewhere := model.Project{ID: uuid.New(), MonumentID: uuid.New(), Budget: 999}

	stats := MonumentRollup(monumentID, []model.Project{half, full, elsewhere}, now)

	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, 1, stats.ActiveProjects)
	assert.Equal(t, 1, stats.CompletedProjects)
	assert.Equal(t, int64(600_000), stats.TotalBudget)
	assert.Equal(t, int64(300_000), stats.SpentBudget)
	// Mean of 50% and 100%
	assert.Equal(t, 75, stats.OverallProgress)
}
