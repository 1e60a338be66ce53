// Package analytics derives dashboard metrics from persisted project,
// milestone and user snapshots. Every function is pure and read-only:
// callers pass the reference time explicitly, and independent snapshots
// may be processed concurrently without coordination.
package analytics

import (
	"math"
	"time"

	"heritageportal/internal/model"
)

// roundPct returns round(100 * num / den), guarding division by zero.
// The result is deliberately not clamped to [0, 100]: over-budget or
// over-claimed states surface as values above 100.
func roundPct(num, den int64) int {
	if den <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(num) / float64(den)))
}

// ceilDays converts a duration to whole days, rounding up.
func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

// SpentBudget sums the budgets of completed milestones.
func SpentBudget(p model.Project) int64 {
	var spent int64
	for _, m := range p.Milestones {
		if m.Status == model.MilestoneCompleted {
			spent += m.Budget
		}
	}
	return spent
}

// ProjectMetrics derives the full per-project metric set.
func ProjectMetrics(p model.Project, now time.Time) model.ProjectAnalytics {
	a := model.ProjectAnalytics{ProjectID: p.ID}

	a.SpentBudget = SpentBudget(p)
	a.RemainingBudget = p.Budget - a.SpentBudget // May be negative; callers display the sign
	a.BudgetUtilization = roundPct(a.SpentBudget, p.Budget)
	a.DurationDays = durationDays(p.Timeline.Start, p.Timeline.End, now)

	for _, m := range p.Milestones {
		a.TotalMilestones++
		switch m.Status {
		case model.MilestoneCompleted:
			a.CompletedMilestones++
		case model.MilestoneActive:
			a.ActiveMilestones++
		case model.MilestonePending:
			a.PendingMilestones++
		}
		a.PhotoCount += len(m.ProofOfWork.Photos.Before) + len(m.ProofOfWork.Photos.During) + len(m.ProofOfWork.Photos.After)
		a.DocumentCount += len(m.ProofOfWork.Documents) + len(m.Documents)
	}
	a.ProgressPercentage = roundPct(int64(a.CompletedMilestones), int64(a.TotalMilestones))

	if !p.Timeline.End.IsZero() && p.Timeline.End.Before(now) && p.Status != model.ProjectCompleted {
		a.IsOverdue = true
		a.DaysOverdue = ceilDays(now.Sub(p.Timeline.End))
	}
	if p.Timeline.Start.After(now) && p.Status == model.ProjectScheduled {
		a.IsUpcoming = true
		a.DaysUntilStart = ceilDays(p.Timeline.Start.Sub(now))
	}

	return a
}

// durationDays is the planned project length in whole days, at least 1.
// Unset dates fall back to now.
func durationDays(start, end, now time.Time) int {
	if start.IsZero() {
		start = now
	}
	if end.IsZero() {
		end = now
	}
	days := ceilDays(end.Sub(start))
	if days < 1 {
		return 1
	}
	return days
}
