package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectAnalytics is the per-project derived metric set for dashboards.
// Percentages are deliberately unclamped: over-budget projects report a
// utilization above 100 and callers display the sign of remaining budget.
type ProjectAnalytics struct {
	ProjectID           uuid.UUID `json:"project_id"`
	SpentBudget         int64     `json:"spent_budget"`
	RemainingBudget     int64     `json:"remaining_budget"`
	DurationDays        int       `json:"duration_days"`
	ProgressPercentage  int       `json:"progress_percentage"`
	BudgetUtilization   int       `json:"budget_utilization"`
	IsOverdue           bool      `json:"is_overdue"`
	DaysOverdue         int       `json:"days_overdue"`
	IsUpcoming          bool      `json:"is_upcoming"`
	DaysUntilStart      int       `json:"days_until_start"`
	TotalMilestones     int       `json:"total_milestones"`
	CompletedMilestones int       `json:"completed_milestones"`
	ActiveMilestones    int       `json:"active_milestones"`
	PendingMilestones   int       `json:"pending_milestones"`
	PhotoCount          int       `json:"photo_count"`
	DocumentCount       int       `json:"document_count"`
}

// MonthBucket is one slot of a fixed six-month completion series
type MonthBucket struct {
	Month          string `json:"month"` // e.g. "Jan 2024"
	CompletedCount int    `json:"completed_count"`
	Earnings       int64  `json:"earnings"`
}

// Activity importance levels
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
)

// ActivityItem is one entry of a ranked recent-activity feed
type ActivityItem struct {
	Type       string    `json:"type"` // "project" or "milestone"
	Text       string    `json:"text"`
	Date       time.Time `json:"date"`
	Link       string    `json:"link"`
	ActorRole  string    `json:"actor_role"`
	Importance string    `json:"importance"`
}

// ContractorStats aggregates a contractor's portfolio for the dashboard
type ContractorStats struct {
	ContractorID           uuid.UUID      `json:"contractor_id"`
	TotalProjects          int            `json:"total_projects"`
	ActiveProjects         int            `json:"active_projects"`
	CompletedProjects      int            `json:"completed_projects"`
	TotalEarnings          int64          `json:"total_earnings"`
	OnTimeDeliveryRate     int            `json:"on_time_delivery_rate"`
	BudgetEfficiency       int            `json:"budget_efficiency"`
	AverageProjectDuration int            `json:"average_project_duration"`
	TotalWorkers           int            `json:"total_workers"`
	MonthlyProgress        []MonthBucket  `json:"monthly_progress"`
	RecentActivity         []ActivityItem `json:"recent_activity"`
}

// WorkerStats aggregates the projects a worker is assigned to
type WorkerStats struct {
	WorkerID            uuid.UUID `json:"worker_id"`
	AssignedProjects    int       `json:"assigned_projects"`
	ActiveProjects      int       `json:"active_projects"`
	CompletedProjects   int       `json:"completed_projects"`
	CompletedMilestones int       `json:"completed_milestones"`
	PendingMilestones   int       `json:"pending_milestones"`
}

// MonumentAnalytics aggregates all projects attached to one monument
type MonumentAnalytics struct {
	MonumentID        uuid.UUID `json:"monument_id"`
	TotalProjects     int       `json:"total_projects"`
	ActiveProjects    int       `json:"active_projects"`
	CompletedProjects int       `json:"completed_projects"`
	TotalBudget       int64     `json:"total_budget"`
	SpentBudget       int64     `json:"spent_budget"`
	OverallProgress   int       `json:"overall_progress"`
}
