package analytics

import (
	"math"
	"time"

	"heritageportal/internal/model"

	"github.com/google/uuid"
)

const monthlyWindow = 6

// ContractorRollup folds a contractor's projects (and the workers the
// contractor registered) into one dashboard summary.
func ContractorRollup(contractorID uuid.UUID, projects []model.Project, workers []model.User, now time.Time) model.ContractorStats {
	stats := model.ContractorStats{ContractorID: contractorID}

	var own []model.Project
	for _, p := range projects {
		if p.ContractorID == contractorID {
			own = append(own, p)
		}
	}

	crew := make(map[uuid.UUID]string) // worker id -> role, for activity attribution
	for _, w := range workers {
		if w.CreatedBy != nil && *w.CreatedBy == contractorID {
			crew[w.ID] = w.Role
			stats.TotalWorkers++
		}
	}

	var totalBudget, totalSpent int64
	var completed, completedOnTime, durationSum int
	for _, p := range own {
		stats.TotalProjects++
		spent := SpentBudget(p)
		totalBudget += p.Budget
		totalSpent += spent
		durationSum += durationDays(p.Timeline.Start, p.Timeline.End, now)

		switch p.Status {
		case model.ProjectActive:
			stats.ActiveProjects++
		case model.ProjectCompleted:
			stats.CompletedProjects++
			completed++
			if deliveredOnTime(p) {
				completedOnTime++
			}
		}
	}

	stats.TotalEarnings = totalSpent
	stats.BudgetEfficiency = roundPct(totalSpent, totalBudget)
	stats.OnTimeDeliveryRate = roundPct(int64(completedOnTime), int64(completed))
	if len(own) > 0 {
		stats.AverageProjectDuration = int(math.Round(float64(durationSum) / float64(len(own))))
	}

	stats.MonthlyProgress = monthlyProgress(own, now)
	stats.RecentActivity = recentActivity(contractorID, crew, own, now)

	return stats
}

// deliveredOnTime reports whether a completed project finished no later
// than its planned end. Projects without a recorded completion date or a
// planned end count as on time.
func deliveredOnTime(p model.Project) bool {
	if p.CompletedAt == nil || p.Timeline.End.IsZero() {
		return true
	}
	return !p.CompletedAt.After(p.Timeline.End)
}

// monthlyProgress buckets project completions into the last six calendar
// months, oldest first. Completions outside the window are dropped.
func monthlyProgress(projects []model.Project, now time.Time) []model.MonthBucket {
	buckets := make([]model.MonthBucket, 0, monthlyWindow)
	index := make(map[string]int, monthlyWindow)
	for i := monthlyWindow - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		label := month.Format("Jan 2006")
		index[label] = len(buckets)
		buckets = append(buckets, model.MonthBucket{Month: label})
	}

	for _, p := range projects {
		if p.Status != model.ProjectCompleted || p.CompletedAt == nil {
			continue
		}
		label := p.CompletedAt.Format("Jan 2006")
		i, ok := index[label]
		if !ok {
			continue
		}
		buckets[i].CompletedCount++
		buckets[i].Earnings += SpentBudget(p)
	}

	return buckets
}

// WorkerRollup summarizes the projects a worker is assigned to.
func WorkerRollup(workerID uuid.UUID, projects []model.Project, now time.Time) model.WorkerStats {
	stats := model.WorkerStats{WorkerID: workerID}

	for _, p := range projects {
		if !assigned(p, workerID) {
			continue
		}
		stats.AssignedProjects++
		switch p.Status {
		case model.ProjectActive:
			stats.ActiveProjects++
		case model.ProjectCompleted:
			stats.CompletedProjects++
		}
		for _, m := range p.Milestones {
			switch m.Status {
			case model.MilestoneCompleted:
				stats.CompletedMilestones++
			case model.MilestonePending:
				stats.PendingMilestones++
			}
		}
	}

	return stats
}

func assigned(p model.Project, workerID uuid.UUID) bool {
	for _, w := range p.Workers {
		if w.ID == workerID {
			return true
		}
	}
	return false
}

// MonumentRollup aggregates every project attached to one monument.
// OverallProgress is the mean of the per-project progress percentages.
func MonumentRollup(monumentID uuid.UUID, projects []model.Project, now time.Time) model.MonumentAnalytics {
	stats := model.MonumentAnalytics{MonumentID: monumentID}

	var progressSum int
	for _, p := range projects {
		if p.MonumentID != monumentID {
			continue
		}
		stats.TotalProjects++
		stats.TotalBudget += p.Budget
		stats.SpentBudget += SpentBudget(p)
		switch p.Status {
		case model.ProjectActive:
			stats.ActiveProjects++
		case model.ProjectCompleted:
			stats.CompletedProjects++
		}
		progressSum += ProjectMetrics(p, now).ProgressPercentage
	}

	if stats.TotalProjects > 0 {
		stats.OverallProgress = int(math.Round(float64(progressSum) / float64(stats.TotalProjects)))
	}

	return stats
}
