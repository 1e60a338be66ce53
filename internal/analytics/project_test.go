package analytics

import (
	"testing"
	"time"

	"heritageportal/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectMetricsBudget(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	p := model.Project{
		ID:     uuid.New(),
		Budget: 1_000_000,
		Status: model.ProjectActive,
		Timeline: model.Timeline{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		Milestones: []model.Milestone{
			{Budget: 300_000, Status: model.MilestoneCompleted},
			{Budget: 200_000, Status: model.MilestoneCompleted},
			{Budget: 400_000, Status: model.MilestoneActive},
			{Budget: 100_000, Status: model.MilestonePending},
		},
	}

	a := ProjectMetrics(p, now)

	assert.Equal(t, int64(500_000), a.SpentBudget)
	assert.Equal(t, int64(500_000), a.RemainingBudget)
	assert.Equal(t, 50, a.BudgetUtilization)
	assert.Equal(t, 4, a.TotalMilestones)
	assert.Equal(t, 2, a.CompletedMilestones)
	assert.Equal(t, 1, a.ActiveMilestones)
	assert.Equal(t, 1, a.PendingMilestones)
	assert.Equal(t, 50, a.ProgressPercentage)
	assert.Equal(t, 365, a.DurationDays)
	assert.False(t, a.IsOverdue)
	assert.False(t, a.IsUpcoming)
}

func TestProjectMetricsZeroDivisionGuards(t *testing.T) {
	a := ProjectMetrics(model.Project{ID: uuid.New()}, time.Now())

	assert.Equal(t, 0, a.BudgetUtilization)
	assert.Equal(t, 0, a.ProgressPercentage)
	assert.Equal(t, int64(0), a.SpentBudget)
	// Unset timeline still yields a usable duration floor
	assert.Equal(t, 1, a.DurationDays)
}

func TestProjectMetricsUnclampedOverBudget(t *testing.T) {
	p := model.Project{
		ID:     uuid.New(),
		Budget: 100_000,
		Milestones: []model.Milestone{
			{Budget: 150_000, Status: model.MilestoneCompleted},
		},
	}

	a := ProjectMetrics(p, time.Now())

	assert.Equal(t, 150, a.BudgetUtilization)
	assert.Equal(t, int64(-50_000), a.RemainingBudget)
}

func TestProjectMetricsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	p := model.Project{
		ID:     uuid.New(),
		Status: model.ProjectActive,
		Timeline: model.Timeline{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	a := ProjectMetrics(p, now)
	assert.True(t, a.IsOverdue)
	// 5 days and 12 hours past the deadline, rounded up
	assert.Equal(t, 6, a.DaysOverdue)

	p.Status = model.ProjectCompleted
	a = ProjectMetrics(p, now)
	assert.False(t, a.IsOverdue)
	assert.Equal(t, 0, a.DaysOverdue)
}

func TestProjectMetricsUpcoming(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	p := model.Project{
		ID:     uuid.New(),
		Status: model.ProjectScheduled,
		Timeline: model.Timeline{
			Start: time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 9, 25, 0, 0, 0, 0, time.UTC),
		},
	}

	a := ProjectMetrics(p, now)
	assert.True(t, a.IsUpcoming)
	assert.Equal(t, 10, a.DaysUntilStart)

	// A future start on a non-scheduled project is not "upcoming"
	p.Status = model.ProjectActive
	a = ProjectMetrics(p, now)
	assert.False(t, a.IsUpcoming)
}

func TestProjectMetricsEvidenceCounts(t *testing.T) {
	p := model.Project{
		ID: uuid.New(),
		Milestones: []model.Milestone{
			{
				Status: model.MilestoneActive,
				ProofOfWork: model.ProofOfWork{
					Photos: model.PhotoSet{
						Before: []model.ProofPhoto{{File: "b.jpg"}},
						During: []model.ProofPhoto{{File: "d1.jpg"}, {File: "d2.jpg"}},
						After:  []model.ProofPhoto{{File: "a.jpg"}},
					},
					Documents: []model.ProofDocument{{File: "survey.pdf"}},
				},
				Documents: []model.ProofDocument{{File: "permit.pdf"}, {File: "license.pdf"}},
			},
		},
	}

	a := ProjectMetrics(p, time.Now())
	assert.Equal(t, 4, a.PhotoCount)
	assert.Equal(t, 3, a.DocumentCount)
}

func TestRoundPctHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 13, roundPct(125, 1000))
	assert.Equal(t, 12, roundPct(124, 1000))
	assert.Equal(t, 0, roundPct(10, 0))
	assert.Equal(t, 0, roundPct(10, -5))
}

func TestDurationDaysFloorAndFallback(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	// End before start still reports at least one day
	assert.Equal(t, 1, durationDays(now, now.AddDate(0, 0, -3), now))
	// Unset end falls back to now
	start := now.AddDate(0, 0, -10)
	assert.Equal(t, 10, durationDays(start, time.Time{}, now))

	require.Equal(t, 1, durationDays(time.Time{}, time.Time{}, now))
}
